// Package lib groups supporting integrations that sit outside the request
// layers: background jobs (asynq) and outbound email (Resend).
package lib
