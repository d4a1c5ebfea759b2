package models

import (
	"strings"
	"time"
)

// Concert is a catalog row joined with its location and genres.
type Concert struct {
	ID               int
	Title            string
	Datetime         time.Time
	TicketsAvailable int
	PurchaseURL      string
	ImageURL         *string
	VenueName        string
	Address          string
	Genres           []string
}

// ConcertSummary is the wire shape embedded in recommendation messages.
// Field names are the ones the frontend already consumes.
type ConcertSummary struct {
	Titulo      string   `json:"titulo"`
	Data        string   `json:"data"`
	Hora        string   `json:"hora"`
	Venue       string   `json:"venue"`
	Cidade      string   `json:"cidade"`
	Pais        string   `json:"pais"`
	PurchaseURL string   `json:"url_compra"`
	Imagem      *string  `json:"imagem"`
	Generos     []string `json:"generos"`
}

// Summary flattens a Concert into its wire shape. The city is the first
// address segment and the country the last, matching how addresses are
// stored ("city, region, country").
func (c Concert) Summary() ConcertSummary {
	var cidade, pais string
	if c.Address != "" {
		parts := strings.Split(c.Address, ",")
		cidade = strings.TrimSpace(parts[0])
		pais = strings.TrimSpace(parts[len(parts)-1])
	}
	genres := c.Genres
	if genres == nil {
		genres = []string{}
	}
	return ConcertSummary{
		Titulo:      c.Title,
		Data:        c.Datetime.Format("2006-01-02"),
		Hora:        c.Datetime.Format("15:04:05"),
		Venue:       c.VenueName,
		Cidade:      cidade,
		Pais:        pais,
		PurchaseURL: c.PurchaseURL,
		Imagem:      c.ImageURL,
		Generos:     genres,
	}
}

// RecommendationMessage is published to the concerts exchange with the
// concerts.recommended routing key, one message per user.
type RecommendationMessage struct {
	UserID    int              `json:"userId"`
	Email     string           `json:"email"`
	Concerts  []ConcertSummary `json:"concerts"`
	Timestamp time.Time        `json:"timestamp"`
}
