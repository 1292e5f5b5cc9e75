package halprice

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Bulletin mirrors the daily wholesale-market price bulletin served by the
// municipal open-data feed.
type Bulletin struct {
	BulletinDate string      `json:"BultenTarihi"`
	Records      []RawRecord `json:"HalFiyatListesi"`
}

// RawRecord is one product line of a bulletin. Product names arrive with
// inconsistent casing and spacing; prices occasionally arrive as strings.
type RawRecord struct {
	Name    string    `json:"MalAdi"`
	Unit    string    `json:"Birim"`
	Average flexFloat `json:"OrtalamaUcret"`
	Min     flexFloat `json:"AsgariUcret"`
	Max     flexFloat `json:"AzamiUcret"`
	Kind    string    `json:"MalTipAdi"`
}

// flexFloat accepts numbers, numeric strings, null, or garbage, decoding the
// last two to zero. Upstream shape drift must never fail a whole bulletin.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
