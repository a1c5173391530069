package common

import "time"

// SessionCookieName is the cookie used to carry the session token between
// the client and the API server.
const SessionCookieName = "skillswap_session"

// OTPDigits is the length of an email verification code.
const OTPDigits = 6

// VerificationWindow is how long a verification code stays valid after it
// is sent. The client countdown and the server-side TTL use the same value.
const VerificationWindow = 10 * time.Minute

// ResendThreshold is the remaining time under which the client may request
// a fresh code before the current one expires.
const ResendThreshold = 60 * time.Second
