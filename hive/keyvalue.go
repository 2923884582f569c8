package hive

// KeyValue is a zero-copy view over one Key Value ("vk") and the hive it
// belongs to, returned by Key.Value and Key.Values. It is the host-facing
// sugar over VK: every method here simply supplies the hive blob VK's
// methods already require, so callers never juggle two arguments.
type KeyValue struct {
	hiveBuf []byte
	vk      VK
}

// Name returns the value's decoded name; empty denotes the key's unnamed
// "(Default)" value.
func (kv KeyValue) Name() (string, error) {
	n, err := kv.vk.Name()
	if err != nil {
		return "", err
	}
	return n.String(), nil
}

// DataType returns the raw REG_* type code.
func (kv KeyValue) DataType() uint32 { return kv.vk.DataType() }

// Data resolves the value's payload, tagged Small or Big per its storage.
func (kv KeyValue) Data() (Data, error) { return kv.vk.Data(kv.hiveBuf) }

// StringData decodes a REG_SZ/REG_EXPAND_SZ value.
func (kv KeyValue) StringData() (string, error) { return kv.vk.StringData(kv.hiveBuf) }

// MultiStringData decodes a REG_MULTI_SZ value into its component lines.
func (kv KeyValue) MultiStringData() ([]string, error) { return kv.vk.MultiStringData(kv.hiveBuf) }

// DWordData decodes a REG_DWORD/REG_DWORD_BIG_ENDIAN value.
func (kv KeyValue) DWordData() (uint32, error) { return kv.vk.DWordData(kv.hiveBuf) }

// QWordData decodes a REG_QWORD value.
func (kv KeyValue) QWordData() (uint64, error) { return kv.vk.QWordData(kv.hiveBuf) }

// BinaryData returns the raw bytes of any value regardless of declared type.
func (kv KeyValue) BinaryData() ([]byte, error) { return kv.vk.BinaryData(kv.hiveBuf) }
