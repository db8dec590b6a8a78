package domain

import "strconv"

// Configuration identifies the merchant account every request is made on behalf of.
// It is read-only once handed to a client; build a new client to change it.
type Configuration struct {
	MerchantID  int
	APIPasscode string
	Platform    string
	Version     string
}

// MerchantIDString is the merchant id in the form the wire payloads carry it.
func (c Configuration) MerchantIDString() string {
	return strconv.Itoa(c.MerchantID)
}
