package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// TicketCode builds a booking reference of the form TCK-<last 6 digits of the
// unix millisecond clock>-<random number below 1000>.
func TicketCode(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}
	ms := fmt.Sprintf("%06d", now.UnixMilli()%1_000_000)
	return fmt.Sprintf("TCK-%s-%d", ms, n.Int64()), nil
}
