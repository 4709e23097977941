package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"vitalog/config"
	"vitalog/models"

	"github.com/google/uuid"
)

// RecordStore is the only component that touches raw store payloads. It
// normalizes legacy field names and historical meal schemas into the
// canonical models and never fails on malformed data: a payload that does
// not parse resolves to "no data for this date".
type RecordStore struct {
	kv KVStore
}

func NewRecordStore(kv KVStore) *RecordStore {
	return &RecordStore{kv: kv}
}

// Legacy alias tables. Older app versions wrote Spanish field names; both
// spellings of the accented keys occur in the wild.
var checkinAliases = map[string][]string{
	"sleepHours":      {"sleepHours", "horasSueno", "horasSueño", "sueno"},
	"stress":          {"stress", "estres", "estrés"},
	"cravings":        {"cravings", "antojos"},
	"movementMinutes": {"movementMinutes", "minutosMovimiento", "movimiento"},
}

var numberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

// asNumber accepts a JSON number or a string containing one (first numeric
// substring wins, "7.5 hrs" → 7.5).
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		m := numberRe.FindString(n)
		if m == "" {
			return 0, false
		}
		var f float64
		if _, err := fmt.Sscanf(m, "%f", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func aliasedNumber(m map[string]any, canonical string) (float64, bool) {
	for _, name := range checkinAliases[canonical] {
		if v, ok := m[name]; ok {
			if f, ok := asNumber(v); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampCheckin(c models.Checkin) models.Checkin {
	c.SleepHours = clamp(c.SleepHours, 0, 12)
	c.Stress = clamp(c.Stress, 1, 5)
	c.Cravings = clamp(c.Cravings, 0, 3)
	c.MovementMinutes = clamp(c.MovementMinutes, 0, 300)
	return c
}

func debugf(format string, args ...any) {
	if config.Log != nil {
		config.Log.Debugf(format, args...)
	}
}

// ---------- keys ----------

func checkinKey(userID uint, dateKey string) string {
	return fmt.Sprintf("u:%d:checkin:%s", userID, dateKey)
}

func checklistKey(userID uint, dateKey string) string {
	return fmt.Sprintf("u:%d:checklist:%s", userID, dateKey)
}

func unlockedKey(userID uint) string {
	return fmt.Sprintf("u:%d:achievements:unlocked", userID)
}

func planKey(userID uint) string {
	return fmt.Sprintf("u:%d:plan:active", userID)
}

// DateKey serializes a local-calendar date the way every daily record is
// partitioned.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// LastNDateKeys returns date keys from today backwards, index 0 = today.
func LastNDateKeys(from time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, DateKey(from.AddDate(0, 0, -i)))
	}
	return keys
}

// ---------- check-ins ----------

func decodeCheckin(raw string) *models.Checkin {
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil
	}
	var c models.Checkin
	var ok bool
	if c.SleepHours, ok = aliasedNumber(m, "sleepHours"); !ok {
		return nil
	}
	if c.Stress, ok = aliasedNumber(m, "stress"); !ok {
		return nil
	}
	if c.Cravings, ok = aliasedNumber(m, "cravings"); !ok {
		return nil
	}
	if c.MovementMinutes, ok = aliasedNumber(m, "movementMinutes"); !ok {
		return nil
	}
	if s, ok := m["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			c.CreatedAt = t
		}
	}
	c = clampCheckin(c)
	return &c
}

// DecodeCheckinJSON parses an incoming check-in payload with the same
// alias tolerance as stored records, so clients still posting legacy
// field names round-trip to identical clamped values. Returns nil when
// any required field is missing or non-numeric.
func DecodeCheckinJSON(raw []byte) *models.Checkin {
	return decodeCheckin(string(raw))
}

// GetCheckin returns nil, nil when the date has no (valid) check-in.
func (r *RecordStore) GetCheckin(ctx context.Context, userID uint, dateKey string) (*models.Checkin, error) {
	raw, ok, err := r.kv.Get(ctx, checkinKey(userID, dateKey))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	c := decodeCheckin(raw)
	if c == nil {
		debugf("discarding malformed check-in for %s", dateKey)
	}
	return c, nil
}

// GetCheckinRange fetches many dates in one multi-key read. A failed read
// degrades to "no records" so batch computations can proceed.
func (r *RecordStore) GetCheckinRange(ctx context.Context, userID uint, dateKeys []string) map[string]*models.Checkin {
	keys := make([]string, len(dateKeys))
	for i, d := range dateKeys {
		keys[i] = checkinKey(userID, d)
	}
	vals, err := r.kv.MGet(ctx, keys)
	if err != nil {
		debugf("check-in range read failed, proceeding with no data: %v", err)
		return map[string]*models.Checkin{}
	}
	out := make(map[string]*models.Checkin, len(vals))
	for i, d := range dateKeys {
		if raw, ok := vals[keys[i]]; ok {
			if c := decodeCheckin(raw); c != nil {
				out[d] = c
			}
		}
	}
	return out
}

func (r *RecordStore) SaveCheckin(ctx context.Context, userID uint, dateKey string, c models.Checkin) (models.Checkin, error) {
	c = clampCheckin(c)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	b, err := json.Marshal(c)
	if err != nil {
		return c, err
	}
	return c, r.kv.Set(ctx, checkinKey(userID, dateKey), string(b))
}

// ---------- checklists ----------

// GetChecklist defaults to all-false when the date has no checklist.
func (r *RecordStore) GetChecklist(ctx context.Context, userID uint, dateKey string) (models.Checklist, error) {
	var cl models.Checklist
	raw, ok, err := r.kv.Get(ctx, checklistKey(userID, dateKey))
	if err != nil {
		return cl, err
	}
	if !ok {
		return cl, nil
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		debugf("discarding malformed checklist for %s", dateKey)
		return cl, nil
	}
	for i := 0; i < len(items) && i < 3; i++ {
		switch v := items[i].(type) {
		case bool:
			cl[i] = v
		case float64:
			cl[i] = v != 0
		}
	}
	return cl, nil
}

// GetChecklistRange fetches many dates in one multi-key read; absent or
// malformed dates come back all-false, and a failed read degrades to
// "no checklists".
func (r *RecordStore) GetChecklistRange(ctx context.Context, userID uint, dateKeys []string) map[string]models.Checklist {
	keys := make([]string, len(dateKeys))
	for i, d := range dateKeys {
		keys[i] = checklistKey(userID, d)
	}
	out := make(map[string]models.Checklist, len(dateKeys))
	vals, err := r.kv.MGet(ctx, keys)
	if err != nil {
		debugf("checklist range read failed, proceeding with no data: %v", err)
		return out
	}
	for i, d := range dateKeys {
		raw, ok := vals[keys[i]]
		if !ok {
			continue
		}
		var items []any
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			continue
		}
		var cl models.Checklist
		for j := 0; j < len(items) && j < 3; j++ {
			switch v := items[j].(type) {
			case bool:
				cl[j] = v
			case float64:
				cl[j] = v != 0
			}
		}
		out[d] = cl
	}
	return out
}

func (r *RecordStore) SaveChecklist(ctx context.Context, userID uint, dateKey string, cl models.Checklist) error {
	b, err := json.Marshal(cl)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, checklistKey(userID, dateKey), string(b))
}

// ---------- meals ----------

// mealConvention is one historical storage schema for a date's meals.
// Conventions are tried in priority order and the first one that yields
// entries wins, so coexisting schema versions are never double-counted.
type mealConvention struct {
	key     func(userID uint, dateKey string) string
	extract func(raw string) []any
}

func extractArray(raw string) []any {
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func extractWrapped(field string) func(string) []any {
	return func(raw string) []any {
		var m map[string]any
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil
		}
		items, _ := m[field].([]any)
		return items
	}
}

var mealConventions = []mealConvention{
	{
		key:     func(u uint, d string) string { return fmt.Sprintf("u:%d:meals:%s", u, d) },
		extract: extractArray,
	},
	{
		key:     func(u uint, d string) string { return fmt.Sprintf("u:%d:meals:v2:%s", u, d) },
		extract: extractWrapped("items"),
	},
	{
		key:     func(u uint, d string) string { return fmt.Sprintf("u:%d:comidas:%s", u, d) },
		extract: extractWrapped("meals"),
	},
	{
		key:     func(u uint, d string) string { return fmt.Sprintf("u:%d:meal_log_%s", u, d) },
		extract: extractArray,
	},
}

var totalsAliases = map[string][]string{
	"calories":     {"calories", "calorias", "kcal"},
	"proteinGrams": {"proteinGrams", "protein", "proteinas"},
	"carbsGrams":   {"carbsGrams", "carbs", "carbohidratos"},
	"fatGrams":     {"fatGrams", "fat", "grasas"},
}

func totalsNumber(m map[string]any, canonical string) float64 {
	for _, name := range totalsAliases[canonical] {
		if v, ok := m[name]; ok {
			if f, ok := asNumber(v); ok {
				return f
			}
		}
	}
	return 0
}

// decodeMealEntry normalizes one raw entry; unrecognized shapes are
// skipped, never fatal.
func decodeMealEntry(v any, dateKey string) (models.MealEntry, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return models.MealEntry{}, false
	}
	totals, nested := m["totals"].(map[string]any)
	if !nested {
		// flat legacy shape: totals at the top level
		totals = m
	}
	recognized := nested
	for canonical := range totalsAliases {
		for _, name := range totalsAliases[canonical] {
			if _, ok := totals[name]; ok {
				recognized = true
			}
		}
	}
	if !recognized {
		return models.MealEntry{}, false
	}
	entry := models.MealEntry{
		DateKey: dateKey,
		Source:  models.MealSourceManual,
		Totals: models.MealTotals{
			Calories:     totalsNumber(totals, "calories"),
			ProteinGrams: totalsNumber(totals, "proteinGrams"),
			CarbsGrams:   totalsNumber(totals, "carbsGrams"),
			FatGrams:     totalsNumber(totals, "fatGrams"),
		},
	}
	if id, ok := m["id"].(string); ok && id != "" {
		entry.ID = id
	} else {
		entry.ID = uuid.NewString()
	}
	switch src, _ := m["source"].(string); src {
	case "photo", "label", "barcode", "manual":
		entry.Source = models.MealSource(src)
	}
	if u, ok := m["photoUrl"].(string); ok {
		entry.PhotoURL = u
	}
	if s, ok := m["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			entry.CreatedAt = t
		}
	}
	return entry, true
}

func decodeMealList(items []any, dateKey string) []models.MealEntry {
	var out []models.MealEntry
	for _, v := range items {
		if entry, ok := decodeMealEntry(v, dateKey); ok {
			out = append(out, entry)
		}
	}
	return out
}

// GetMealsForDate reconciles every historical meal schema into the
// canonical shape. Falls back to a full-store prefix scan filtered by a
// naming heuristic when no known convention matches.
func (r *RecordStore) GetMealsForDate(ctx context.Context, userID uint, dateKey string) ([]models.MealEntry, error) {
	for _, conv := range mealConventions {
		raw, ok, err := r.kv.Get(ctx, conv.key(userID, dateKey))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if entries := decodeMealList(conv.extract(raw), dateKey); len(entries) > 0 {
			return entries, nil
		}
	}

	// last resort: unknown key spellings from very old builds
	all, err := r.kv.ScanPrefix(ctx, fmt.Sprintf("u:%d:", userID))
	if err != nil {
		return nil, err
	}
	for key, raw := range all {
		if !looksLikeMealKey(key, dateKey) {
			continue
		}
		items := extractArray(raw)
		if items == nil {
			items = extractWrapped("items")(raw)
		}
		if entries := decodeMealList(items, dateKey); len(entries) > 0 {
			debugf("meals for %s found via store scan at %q", dateKey, key)
			return entries, nil
		}
	}
	return nil, nil
}

func looksLikeMealKey(key, dateKey string) bool {
	k := strings.ToLower(key)
	if !strings.Contains(k, dateKey) {
		return false
	}
	return strings.Contains(k, "meal") || strings.Contains(k, "comida")
}

// AddMeal appends to the current canonical convention for the date.
func (r *RecordStore) AddMeal(ctx context.Context, userID uint, entry models.MealEntry) (models.MealEntry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Source == "" {
		entry.Source = models.MealSourceManual
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	existing, err := r.GetMealsForDate(ctx, userID, entry.DateKey)
	if err != nil {
		return entry, err
	}
	existing = append(existing, entry)
	b, err := json.Marshal(existing)
	if err != nil {
		return entry, err
	}
	key := mealConventions[0].key(userID, entry.DateKey)
	return entry, r.kv.Set(ctx, key, string(b))
}

// ---------- unlocked achievements ----------

func (r *RecordStore) GetUnlocked(ctx context.Context, userID uint) ([]models.UnlockedAchievement, error) {
	raw, ok, err := r.kv.Get(ctx, unlockedKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var list []models.UnlockedAchievement
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		debugf("discarding malformed unlocked-achievement list")
		return nil, nil
	}
	return list, nil
}

func (r *RecordStore) SaveUnlocked(ctx context.Context, userID uint, list []models.UnlockedAchievement) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, unlockedKey(userID), string(b))
}

// ---------- weekly plan snapshot ----------

// GetActivePlan returns nil when no plan is active; the engine never
// writes this key.
func (r *RecordStore) GetActivePlan(ctx context.Context, userID uint) (*models.WeeklyPlan, error) {
	raw, ok, err := r.kv.Get(ctx, planKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var p models.WeeklyPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, nil
	}
	return &p, nil
}
