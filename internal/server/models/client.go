package models

// Client is an application allowed to exchange credentials for tokens.
type Client struct {
	ClientID  string
	Name      string
	GrantType string
}
