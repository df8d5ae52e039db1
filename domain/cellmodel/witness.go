package cellmodel

// Secp256k1SignatureSize is the size of a recoverable secp256k1 signature.
const Secp256k1SignatureSize = 65

// WitnessArgs is the structured witness carried by the first input of a lock
// group. Nil fields are absent, which is different from present-but-empty.
type WitnessArgs struct {
	Lock       []byte
	InputType  []byte
	OutputType []byte
}

// NewSecp256k1WitnessArgs returns the placeholder witness of a single
// secp256k1 signature: a zero filled lock of the signature's size. The
// placeholder has the size of the final witness, so fees computed over it
// stay valid after signing.
func NewSecp256k1WitnessArgs() *WitnessArgs {
	return &WitnessArgs{Lock: make([]byte, Secp256k1SignatureSize)}
}
