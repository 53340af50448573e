package mt

// NodeMeta is the metadata of a node, such as a chest's inventory.
type NodeMeta struct {
	Fields []NodeMetaField

	// Inv is the serialized inventory without its final
	// "EndInventory" line. See ToCltInv.
	Inv string
}

type NodeMetaField struct {
	Field
	Private bool
}

// Field returns the field called name, or nil if there is none.
func (nm *NodeMeta) Field(name string) *NodeMetaField {
	if nm == nil {
		return nil
	}

	for i, f := range nm.Fields {
		if f.Name == name {
			return &nm.Fields[i]
		}
	}

	return nil
}

const invEnd = "EndInventory\n"
