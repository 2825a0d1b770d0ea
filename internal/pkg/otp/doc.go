// Package otp generates and checks short-lived numeric one-time codes.
//
// Codes are random (not time-derived) and are expected to be stored alongside
// an expiry, delivered out of band, then matched exactly once.
package otp
