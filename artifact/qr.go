package artifact

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/skip2/go-qrcode"
)

const (
	dataURLPrefix = "data:image/png;base64,"
	defaultSize   = 256
)

var ErrIncompletePayload = errors.New("incomplete ticket payload")

// Payload is the content scanned at the venue entrance.
type Payload struct {
	TicketID string    `json:"ticketId"`
	UserID   string    `json:"userId"`
	EventID  string    `json:"eventId"`
	Tickets  int       `json:"tickets"`
	Date     time.Time `json:"date"`
}

func (p Payload) validate() error {
	if p.TicketID == "" || p.UserID == "" || p.EventID == "" || p.Tickets <= 0 || p.Date.IsZero() {
		return ErrIncompletePayload
	}
	return nil
}

type QREncoder struct {
	size  int
	level qrcode.RecoveryLevel
}

func NewQREncoder() QREncoder {
	return QREncoder{
		size:  defaultSize,
		level: qrcode.Highest,
	}
}

// Encode renders the payload as a PNG QR code and returns it as a data URL.
func (e QREncoder) Encode(p Payload) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	content, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("could not marshal ticket payload: %w", err)
	}

	png, err := qrcode.Encode(string(content), e.level, e.size)
	if err != nil {
		return "", fmt.Errorf("could not encode qr code: %w", err)
	}

	return dataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
