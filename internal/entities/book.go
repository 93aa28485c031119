package entities

// Book is the only persisted resource. No field other than ID is constrained;
// ISBN is a plain integer with no uniqueness index.
type Book struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Autor     string `json:"autor"`
	ISBN      int    `gorm:"column:isbn" json:"isbn"`
	Editorial string `json:"editorial"`
	Paginas   int    `json:"paginas"`
}

func (Book) TableName() string {
	return "books"
}
