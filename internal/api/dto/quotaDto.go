package dto

import "time"

// QuotaResponse exposes the caller's remaining rate-limit budget. Reading
// it never consumes quota.
type QuotaResponse struct {
	MinuteRemaining int       `json:"minute_remaining"`
	HourRemaining   int       `json:"hour_remaining"`
	MinuteResetAt   time.Time `json:"minute_reset_at"`
	HourResetAt     time.Time `json:"hour_reset_at"`
}
