package models

// ReferenceItem mirrors the legacy catalog lookup table mapping a reference
// to candidate item codes.
type ReferenceItem struct {
	Reference   string `gorm:"column:REFERENCIA;index"`
	Code        string `gorm:"column:CODIGO"`
	Description string `gorm:"column:DESCRICAO"`
}

func (ReferenceItem) TableName() string {
	return "ITENS_REFERENCIA"
}
