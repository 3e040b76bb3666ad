package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"
)

var ErrInvalidInitData = errors.New("init data signature mismatch")

// ValidateWebAppInitData checks the signed init data a Telegram WebApp sends,
// per Telegram's documented scheme: the secret key is HMAC-SHA256 of the bot
// token keyed with "WebAppData", and the hash covers every field except the
// hash itself, sorted and newline-joined.
func ValidateWebAppInitData(initData, botToken string) error {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return ErrInvalidInitData
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return ErrInvalidInitData
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(dataCheckString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(gotHash), []byte(wantHash)) {
		return ErrInvalidInitData
	}
	return nil
}
