package processor

import (
	"strings"

	"github.com/openfda-labs/fdadrugs-api/logging"
	"github.com/openfda-labs/fdadrugs-api/processor/entities"
)

// DedupKey computes the identity key used to drop duplicate records in a
// batch. The default pairs generic and brand name; it is pluggable so a
// stronger identity (set_id) can be swapped in without touching the
// batch algorithm.
type DedupKey func(entities.Drug) string

// PairKey is the default identity: lowercased generic plus brand name.
// Approximate only; two distinct combination products sharing both names
// would collapse.
func PairKey(d entities.Drug) string {
	return strings.ToLower(d.GenericName) + "\x00" + strings.ToLower(d.BrandName)
}

// SetIDKey keys records by their label set ID.
func SetIDKey(d entities.Drug) string {
	return d.SetID
}

// ProcessSearchResults normalizes a batch of raw results and drops
// duplicates, keeping the first occurrence per identity key. Output order
// is input order restricted to survivors. A failure on one record is
// logged and skipped; it never aborts the batch.
func ProcessSearchResults(rawResults []map[string]any, key DedupKey) []entities.Drug {
	if key == nil {
		key = PairKey
	}

	seen := make(map[string]struct{}, len(rawResults))
	drugs := make([]entities.Drug, 0, len(rawResults))

	for i, raw := range rawResults {
		drug, ok := normalizeGuarded(i, raw)
		if !ok {
			continue
		}
		k := key(drug)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		drugs = append(drugs, drug)
	}

	return drugs
}

// normalizeGuarded shields the batch from a panic while normalizing one
// record. The upstream payload is untyped, so a single pathological record
// must not take down the whole result set.
func normalizeGuarded(index int, raw map[string]any) (drug entities.Drug, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Skipping drug record that failed normalization", "index", index, "panic", r)
			ok = false
		}
	}()
	return NormalizeDrug(raw), true
}
