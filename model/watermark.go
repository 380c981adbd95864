package model

type WatermarkedImage struct {
	DTO
	Url     string `json:"url"`
	Message string `gorm:"size:20;not null" json:"message"`
	UserID  uint   `json:"userId"`
	User    User   `gorm:"foreignKey:UserID" json:"-"`
}
