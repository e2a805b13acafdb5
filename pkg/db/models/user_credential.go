package models

// UserCredential mirrors the legacy USUARIOS table.
type UserCredential struct {
	Login       string `gorm:"column:LOGIN;primaryKey"`
	Password    string `gorm:"column:SENHA;not null"`
	DisplayName string `gorm:"column:NOME"`
}

func (UserCredential) TableName() string {
	return "USUARIOS"
}
