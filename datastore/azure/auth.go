/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package azure

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	smithytime "github.com/aws/smithy-go/time"
)

// signSharedKeyLite sets x-ms-date and a SharedKeyLite Authorization header.
// The string to sign is the date and the canonicalized resource
// (/account/path) separated by a newline.
func signSharedKeyLite(req *http.Request, account string, key []byte, now time.Time) {
	date := smithytime.FormatHTTPDate(now.UTC())
	req.Header.Set("x-ms-date", date)

	stringToSign := date + "\n" + canonicalizedResource(account, req)
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(stringToSign))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req.Header.Set("Authorization", "SharedKeyLite "+account+":"+sig)
}

func canonicalizedResource(account string, req *http.Request) string {
	resource := "/" + account + req.URL.EscapedPath()
	if comp := req.URL.Query().Get("comp"); comp != "" {
		resource += "?comp=" + comp
	}
	return resource
}
