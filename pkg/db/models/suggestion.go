package models

// Suggestion mirrors the legacy SUGESTOES table. Column names are kept
// exactly as the downstream buyer tooling expects them.
//
// Only the seller fields are written by this system; ACAO_COMPRADOR,
// COMENTARIO_COMPRADOR and ORDEM_COMPRA belong to the buyer-side process and
// are read back untouched.
type Suggestion struct {
	ID               uint   `gorm:"column:ID;primaryKey;autoIncrement" json:"-"`
	Reference        string `gorm:"column:REFERENCIA;not null" json:"REFERENCIA"`
	Quantity         int    `gorm:"column:QUANTIDADE;not null" json:"QUANTIDADE"`
	Brand            string `gorm:"column:MARCA;not null" json:"MARCA"`
	SuggestionType   string `gorm:"column:TIPO_SUGESTAO;not null" json:"TIPO_SUGESTAO"`
	SellerComment    string `gorm:"column:COMENTARIO_VENDEDOR" json:"COMENTARIO_VENDEDOR"`
	Seller           string `gorm:"column:VENDEDOR;not null" json:"VENDEDOR"`
	BuyerAction      string `gorm:"column:ACAO_COMPRADOR" json:"ACAO_COMPRADOR"`
	BuyerComment     string `gorm:"column:COMENTARIO_COMPRADOR" json:"COMENTARIO_COMPRADOR"`
	PurchaseOrder    string `gorm:"column:ORDEM_COMPRA" json:"ORDEM_COMPRA"`
	ItemCode         string `gorm:"column:CODIGO" json:"CODIGO"`
	ItemDescription  string `gorm:"column:DESCRICAO_CODIGO" json:"DESCRICAO_CODIGO"`
	SubmissionStamp  string `gorm:"column:DATA_LANCAMENTO" json:"DATA_LANCAMENTO"`
}

func (Suggestion) TableName() string {
	return "SUGESTOES"
}
