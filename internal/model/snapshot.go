package model

// SnapshotParte freezes the fiscal data of a client or supplier as typed on the
// document form at creation time. Document updates never rewrite it, so the
// document stays historically accurate after the party record is edited.
type SnapshotParte struct {
	Nombre       string  `gorm:"not null"`
	CUIT         *string `gorm:"type:varchar(11)"`
	CondicionIVA *string `gorm:"type:varchar(30)"`
	Direccion    *string
}
