package util

import "english_edu_backend/internal/model"

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimeVideo       = "video/"
	MimeImage       = "image/"
	MimeAudio       = "audio/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedVideoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm"}
)

// GradeLabels 用于通知和证书文案
var GradeLabels = map[model.Grade]string{
	model.GradeFirstSec:  "First Secondary",
	model.GradeSecondSec: "Second Secondary",
	model.GradeThirdSec:  "Third Secondary",
}
