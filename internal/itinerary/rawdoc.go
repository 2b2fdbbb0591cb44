package itinerary

// rawDocument is the tolerant view of a Document. A field that is absent or
// has the wrong type reads as its zero value; nil lists mean "absent".
type rawDocument struct {
	title       string
	aiInsights  []string
	packingList []string
	days        []rawDay
}

type rawDay struct {
	theme       string
	activities  []rawActivity
	dailyBudget float64
	weatherTip  string
}

type rawActivity struct {
	// index is the position in the raw list, kept stable when siblings are skipped.
	index         int
	name          string
	description   string
	location      string
	timeSlot      TimeSlot
	category      string
	estimatedCost float64
	tips          []string
}

func parseRawDocument(doc Document) rawDocument {
	m := map[string]any(doc)
	raw := rawDocument{
		title:       stringField(m, "title"),
		aiInsights:  stringListField(m, "aiInsights"),
		packingList: stringListField(m, "packingList"),
	}

	days, _ := m["days"].([]any)
	raw.days = make([]rawDay, 0, len(days))
	for _, d := range days {
		dm, _ := d.(map[string]any)
		raw.days = append(raw.days, parseRawDay(dm))
	}
	return raw
}

// parseRawDay accepts a nil map, which yields a day made only of defaults.
func parseRawDay(m map[string]any) rawDay {
	day := rawDay{
		theme:       stringField(m, "theme"),
		dailyBudget: numberField(m, "dailyBudget"),
		weatherTip:  stringField(m, "weatherTip"),
	}

	list, _ := m["activities"].([]any)
	day.activities = make([]rawActivity, 0, len(list))
	for j, a := range list {
		am, ok := a.(map[string]any)
		if !ok {
			continue
		}
		day.activities = append(day.activities, parseRawActivity(j, am))
	}
	return day
}

func parseRawActivity(index int, m map[string]any) rawActivity {
	act := rawActivity{
		index:         index,
		name:          stringField(m, "name"),
		description:   stringField(m, "description"),
		location:      stringField(m, "location"),
		category:      stringField(m, "category"),
		estimatedCost: numberField(m, "estimatedCost"),
		tips:          stringListField(m, "tips"),
	}

	// Some responses nest the address the same way the output does.
	if loc, ok := m["location"].(map[string]any); ok {
		act.location = stringField(loc, "address")
	}

	if slot, ok := m["timeSlot"].(map[string]any); ok {
		act.timeSlot = TimeSlot{
			Start: stringField(slot, "start"),
			End:   stringField(slot, "end"),
		}
	}
	return act
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func numberField(m map[string]any, key string) float64 {
	n, _ := m[key].(float64)
	return n
}

// stringListField returns nil when key is absent or not a list. Non-string
// elements are dropped.
func stringListField(m map[string]any, key string) []string {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
