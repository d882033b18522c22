package helpers

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	referenceCodePrefix       = "APP"
	referenceCodeRandomLength = 6
	base36Alphabet            = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ReferenceCodeGenerator produces applicant reference codes
type ReferenceCodeGenerator func() string

// NewReferenceCode returns a code of the form APP-<unix millis base36>-<6 random base36>,
// upper-cased, e.g. APP-LZ1K8Q2W-7GH2QX.
func NewReferenceCode() string {
	return referenceCodeAt(time.Now())
}

func referenceCodeAt(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return referenceCodePrefix + "-" + ts + "-" + randomBase36(referenceCodeRandomLength)
}

func randomBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b.WriteByte(base36Alphabet[idx.Int64()])
	}
	return b.String()
}
