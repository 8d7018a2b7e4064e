package model

// EditableCompanyInfo is part of company record that admin can write
type EditableCompanyInfo struct {
	Name                string `gorm:"type:text;uniqueIndex;not null" json:"company_name"`
	Industry            string `gorm:"type:text" json:"industry"`
	Website             string `gorm:"type:text;default:''" json:"website"`
	Address             string `gorm:"type:text" json:"address"`
	CEOName             string `gorm:"type:text;default:'Unknown'" json:"ceo_name"`
	BusinessDescription string `gorm:"type:text;default:''" json:"business_description"`
}

// Company is gorm model for employer that owns job posts
type Company struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug string `gorm:"type:text;uniqueIndex" json:"slug"`
	EditableCompanyInfo
}
