package models

import "time"

type MesaStatus string

const (
	MesaDisponivel MesaStatus = "disponivel"
	MesaOcupada    MesaStatus = "ocupada"
	MesaSuja       MesaStatus = "suja"
	MesaReservada  MesaStatus = "reservada"
)

type Mesa struct {
	ID          uint       `gorm:"primaryKey"`
	Numero      int        `gorm:"not null;unique"`
	Capacidade  int        `gorm:"not null"`
	Localizacao string     `gorm:"size:100"` // salão, varanda etc.
	Status      MesaStatus `gorm:"size:20;not null;default:disponivel"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
