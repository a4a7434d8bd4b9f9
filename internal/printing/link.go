package printing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"sticker-backend/internal/label"
)

var ErrInvalidLink = errors.New("invalid or expired print link")

// Job is what a print link prints: saved stickers by barcode, in order.
// Copies of zero means each sticker's saved quantity.
type Job struct {
	ID       string       `json:"-"`
	Barcodes []string     `json:"barcodes"`
	Layout   label.Layout `json:"layout"`
	Copies   int          `json:"copies"`
}

type jobClaims struct {
	Barcodes []string     `json:"barcodes"`
	Layout   label.Layout `json:"layout"`
	Copies   int          `json:"copies,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and checks HS256 print link tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Sign(job Job) (string, error) {
	if len(job.Barcodes) == 0 {
		return "", errors.New("print job has no barcodes")
	}
	now := s.now()
	claims := &jobClaims{
		Barcodes: job.Barcodes,
		Layout:   job.Layout,
		Copies:   job.Copies,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing print link: %w", err)
	}
	return token, nil
}

func (s *Signer) Parse(token string) (Job, error) {
	claims := &jobClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	return Job{ID: claims.ID, Barcodes: claims.Barcodes, Layout: claims.Layout, Copies: claims.Copies}, nil
}
