package idgen

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// NextGroupID returns the smallest unused product-group id, zero-padded to
// at least two digits. Gaps left by deleted groups are filled before the
// sequence grows; ids that do not parse as numbers are ignored.
func NextGroupID(existing []string) string {
	return nextPadded(existing)
}

// NextItemID returns the next product id within one group. Same gap-fill
// rule as NextGroupID, scoped to the group's own ids.
func NextItemID(existing []string) string {
	return nextPadded(existing)
}

func nextPadded(existing []string) string {
	used := make(map[int]bool, len(existing))
	for _, id := range existing {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		used[n] = true
	}
	n := 1
	for used[n] {
		n++
	}
	// %02d keeps two digits up to 99 and grows naturally from 100 on.
	return fmt.Sprintf("%02d", n)
}

// NextOrderGroupID returns the batch id for year/month given the ids
// already created for that exact year/month. The first batch of a month
// is the bare "YYYYMM"; later ones take the first unused letter suffix.
func NextOrderGroupID(year, month int, existing []string) string {
	used := make(map[string]bool, len(existing))
	for _, id := range existing {
		used[id] = true
	}
	base := fmt.Sprintf("%d%02d", year, month)
	if !used[base] {
		return base
	}
	for n := 1; ; n++ {
		if id := base + letterSuffix(n); !used[id] {
			return id
		}
	}
}

// letterSuffix maps 1→A .. 26→Z, 27→AA (spreadsheet-column style).
func letterSuffix(n int) string {
	var s []byte
	for n > 0 {
		n--
		s = append([]byte{byte('A' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}

// NewOrderItemID returns an opaque unique token for an order line. Lines
// carry no ordering contract, so a random UUID is enough.
func NewOrderItemID() string {
	return uuid.NewString()
}
