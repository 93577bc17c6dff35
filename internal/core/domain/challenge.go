package domain

import "time"

// Challenge is an ephemeral sign-in nonce issued to a wallet address. It
// lives only in the challenge store (never in durable storage), is keyed by
// the lowercased address, expires on its own, and is consumed at most once.
type Challenge struct {
	Nonce    string    `json:"nonce"`
	IssuedAt time.Time `json:"issued_at"`
}
