package mt

// An AOID identifies an active object.
type AOID uint16

type aoType uint8

const genericCAO aoType = 101

// An AOAdd adds an AO to those the client can see.
type AOAdd struct {
	ID AOID

	// InitData is the serialized initialization data of a generic CAO.
	InitData []byte
}

// An IDAOMsg is a message about the AO with ID.
// Msg starts with the message type.
type IDAOMsg struct {
	ID  AOID
	Msg []byte
}
