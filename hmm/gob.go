package hmm

import (
	"bytes"
	"encoding/gob"
)

// Compile time checks to ensure Model satisfies the gob interfaces.
var (
	_ gob.GobEncoder = (*Model)(nil)
	_ gob.GobDecoder = (*Model)(nil)
)

func init() {
	// Catalog snapshots encode scorers through an interface value.
	gob.Register(&Model{})
}

// GobEncode method for Model.
func (m *Model) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)

	if err := encoder.Encode(m.nStates); err != nil {
		return nil, err
	}

	if err := encoder.Encode(m.dim); err != nil {
		return nil, err
	}

	if err := encoder.Encode(m.logInit); err != nil {
		return nil, err
	}

	if err := encoder.Encode(m.logTrans); err != nil {
		return nil, err
	}

	if err := encoder.Encode(m.means); err != nil {
		return nil, err
	}

	if err := encoder.Encode(m.vars); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode method for Model.
func (m *Model) GobDecode(data []byte) error {
	decoder := gob.NewDecoder(bytes.NewBuffer(data))

	if err := decoder.Decode(&m.nStates); err != nil {
		return err
	}

	if err := decoder.Decode(&m.dim); err != nil {
		return err
	}

	if err := decoder.Decode(&m.logInit); err != nil {
		return err
	}

	if err := decoder.Decode(&m.logTrans); err != nil {
		return err
	}

	if err := decoder.Decode(&m.means); err != nil {
		return err
	}

	return decoder.Decode(&m.vars)
}
