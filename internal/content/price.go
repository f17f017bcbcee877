package content

import (
	"fmt"
	"strings"
)

// FormatPrice renders "£min to £max per unit per interval", leaving out the
// parts that are empty.
func FormatPrice(minPrice, maxPrice, unit, interval string) string {
	if minPrice == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString("£" + minPrice)
	if maxPrice != "" {
		b.WriteString(" to £" + maxPrice)
	}
	if unit != "" {
		b.WriteString(" per " + strings.ToLower(unit))
	}
	if interval != "" {
		b.WriteString(" per " + strings.ToLower(interval))
	}
	return b.String()
}

// FormatFieldBasedPrice formats the price held in the answer keys named by a
// pricing question's fields.
func FormatFieldBasedPrice(data map[string]any, q *Question) string {
	field := func(role string) string {
		key, ok := q.Fields[role]
		if !ok {
			return ""
		}
		return stringValue(data[key])
	}
	return FormatPrice(field(FieldMinimumPrice), field(FieldMaximumPrice), field(FieldPriceUnit), field(FieldPriceInterval))
}

// FormatServicePrice formats the conventional priceMin/priceMax/priceUnit/
// priceInterval keys of a service.
func FormatServicePrice(service map[string]any) string {
	return FormatPrice(
		stringValue(service["priceMin"]),
		stringValue(service["priceMax"]),
		stringValue(service["priceUnit"]),
		stringValue(service["priceInterval"]),
	)
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", val), "0"), ".")
	}
	return fmt.Sprint(v)
}
