package codec

import "fmt"

func errShortBuffer(want, have int) error {
	return fmt.Errorf("codec: need %d bytes, have %d", want, have)
}
