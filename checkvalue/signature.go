package checkvalue

import (
	"fmt"

	"go.mozilla.org/pkcs7"
)

// VerifySignature checks a Signature-type Check Value: v.Data is a detached
// PKCS#7 SignedData blob whose signed content must equal covered.
func VerifySignature(v Value, covered []byte) error {
	if v.Type != Signature {
		return fmt.Errorf("checkvalue: VerifySignature called on %v, not Signature", v.Type)
	}
	p7, err := pkcs7.Parse(v.Data)
	if err != nil {
		return fmt.Errorf("checkvalue: parse signature: %w", err)
	}
	p7.Content = covered
	if err := p7.Verify(); err != nil {
		return fmt.Errorf("checkvalue: signature verification failed: %w", err)
	}
	return nil
}
