package kv

// The schema mirrors monerod's database version 5 layout: seventeen
// named tables, each with a fixed key shape. Multi-value tables hold a
// duplicate set per primary key; tables keyed purely by their sub-key
// use the constant zero key as primary. Names are literal and must
// match exactly for inter-operability with external writers of the
// same schema.

// keyOrder is the logical ordering of a table's keys. The engine
// compares keys bytewise, so each order maps to a physical key
// encoding that makes bytewise order match: fixed-width big-endian for
// integers, raw bytes for hashes and strings.
type keyOrder int

const (
	orderLexicographic keyOrder = iota
	orderUint64
	orderHash32
	orderString
)

// maxTableCount is the environment's table ceiling.
const maxTableCount = 32

// tableDescriptor declares one named table. The full set is consumed
// once at open; descriptors double as the comparator configuration of
// the reference schema.
type tableDescriptor struct {
	name     []byte
	keys     keyOrder
	dup      bool
	dupOrder keyOrder
}

var (
	blocksTable          = tableDescriptor{name: []byte("blocks"), keys: orderUint64}
	blockInfoTable       = tableDescriptor{name: []byte("block_info"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	blockHeightsTable    = tableDescriptor{name: []byte("block_heights"), keys: orderUint64, dup: true, dupOrder: orderHash32}
	txsPrunedTable       = tableDescriptor{name: []byte("txs_pruned"), keys: orderUint64}
	txsPrunableTable     = tableDescriptor{name: []byte("txs_prunable"), keys: orderUint64}
	txsPrunableHashTable = tableDescriptor{name: []byte("txs_prunable_hash"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	txsPrunableTipTable  = tableDescriptor{name: []byte("txs_prunable_tip"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	txIndicesTable       = tableDescriptor{name: []byte("tx_indices"), keys: orderUint64, dup: true, dupOrder: orderHash32}
	txOutputsTable       = tableDescriptor{name: []byte("tx_outputs"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	outputTxsTable       = tableDescriptor{name: []byte("output_txs"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	outputAmountsTable   = tableDescriptor{name: []byte("output_amounts"), keys: orderUint64, dup: true, dupOrder: orderUint64}
	spentKeysTable       = tableDescriptor{name: []byte("spent_keys"), keys: orderUint64, dup: true, dupOrder: orderHash32}
	txpoolMetaTable      = tableDescriptor{name: []byte("txpool_meta"), keys: orderHash32}
	txpoolBlobTable      = tableDescriptor{name: []byte("txpool_blob"), keys: orderHash32}
	altBlocksTable       = tableDescriptor{name: []byte("alt_blocks"), keys: orderHash32}
	hfVersionsTable      = tableDescriptor{name: []byte("hf_versions"), keys: orderUint64}
	propertiesTable      = tableDescriptor{name: []byte("properties"), keys: orderString}
)

// allTables is the declarative table list consumed at open.
var allTables = []tableDescriptor{
	blocksTable,
	blockInfoTable,
	blockHeightsTable,
	txsPrunedTable,
	txsPrunableTable,
	txsPrunableHashTable,
	txsPrunableTipTable,
	txIndicesTable,
	txOutputsTable,
	outputTxsTable,
	outputAmountsTable,
	spentKeysTable,
	txpoolMetaTable,
	txpoolBlobTable,
	altBlocksTable,
	hfVersionsTable,
	propertiesTable,
}

// zeroKey is the placeholder primary key of tables keyed purely by
// their duplicate sub-key.
var zeroKey = []byte{0, 0, 0, 0, 0, 0, 0, 0}

// Property keys are null-terminated ASCII strings.
var (
	versionKey      = []byte("version\x00")
	pruningSeedKey  = []byte("pruning_seed\x00")
	maxBlockSizeKey = []byte("max_block_size\x00")
)
