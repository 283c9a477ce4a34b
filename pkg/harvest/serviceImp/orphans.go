package serviceImp

import (
	"sort"
	"strconv"
	"strings"

	"fieldbook/entities"
)

// HarvestKey is the key a yield's harvested status event carries.
func HarvestKey(y entities.YieldRecord) string {
	if y.IdempotencyKey != nil && *y.IdempotencyKey != "" {
		return *y.IdempotencyKey
	}
	return "yield:" + strconv.FormatUint(uint64(y.YieldID), 10)
}

func sameCrop(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FindOrphans returns the yields that no harvested status event accounts
// for. Events carrying a harvest key claim their yield directly; the rest
// are matched greedily in time order to the earliest unclaimed yield of the
// same field and crop that is not later than the event.
func FindOrphans(yields []entities.YieldRecord, events []entities.StatusEvent) []entities.YieldRecord {
	ys := append([]entities.YieldRecord(nil), yields...)
	sort.SliceStable(ys, func(i, j int) bool {
		if !ys[i].CreatedAt.Equal(ys[j].CreatedAt) {
			return ys[i].CreatedAt.Before(ys[j].CreatedAt)
		}
		return ys[i].YieldID < ys[j].YieldID
	})

	var harvested []entities.StatusEvent
	for _, ev := range events {
		if ev.Status == entities.StatusHarvested {
			harvested = append(harvested, ev)
		}
	}
	sort.SliceStable(harvested, func(i, j int) bool {
		if !harvested[i].CreatedAt.Equal(harvested[j].CreatedAt) {
			return harvested[i].CreatedAt.Before(harvested[j].CreatedAt)
		}
		return harvested[i].EventID < harvested[j].EventID
	})

	matched := make([]bool, len(ys))
	usedEvent := make([]bool, len(harvested))

	byKey := make(map[string]int, len(ys))
	for i, y := range ys {
		byKey[HarvestKey(y)] = i
	}
	for j, ev := range harvested {
		if ev.HarvestKey == nil {
			continue
		}
		if i, ok := byKey[*ev.HarvestKey]; ok && !matched[i] {
			matched[i] = true
			usedEvent[j] = true
		}
	}

	for j, ev := range harvested {
		if usedEvent[j] || ev.HarvestKey != nil {
			continue
		}
		for i, y := range ys {
			if matched[i] || y.FieldID != ev.FieldID || !sameCrop(y.Crop, ev.Crop) {
				continue
			}
			if y.CreatedAt.After(ev.CreatedAt) {
				break
			}
			matched[i] = true
			usedEvent[j] = true
			break
		}
	}

	var out []entities.YieldRecord
	for i, y := range ys {
		if !matched[i] {
			out = append(out, y)
		}
	}
	return out
}
