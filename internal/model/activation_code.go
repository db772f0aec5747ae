package model

// ActivationCode is a single-use credential unlocking one paid course for one
// user. Once consumed it stays used and bound to the consuming user forever.
// swagger:model ActivationCode
type ActivationCode struct {
	BaseModel
	Code        string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	CourseID    string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	CourseTitle string `gorm:"size:255" json:"courseTitle"`
	IsUsed      bool   `gorm:"default:false" json:"isUsed"`
	UsedBy      *uint  `json:"usedBy,omitempty"`
}

func (ActivationCode) TableName() string {
	return "activation_codes"
}

// Usable reports whether this code can unlock the given course: the code
// string and course must both match and the code must never have been used.
func (c *ActivationCode) Usable(courseID, code string) bool {
	return !c.IsUsed && c.Code == code && c.CourseID == courseID
}

// Consume marks the code used by userID. It mutates nothing and returns
// false unless the code is usable for the given course, so a consumed code
// keeps its original binding.
func (c *ActivationCode) Consume(courseID, code string, userID uint) bool {
	if !c.Usable(courseID, code) {
		return false
	}
	c.IsUsed = true
	c.UsedBy = &userID
	return true
}
