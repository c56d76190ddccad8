package srgsrc

import (
	"bytes"
	"fmt"
)

func urlf(format, v string) string {
	return fmt.Sprintf(format, v, v)
}

func newReader(data []byte) *bytes.Reader {
	return bytes.NewReader(data)
}
