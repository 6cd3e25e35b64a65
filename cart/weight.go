package cart

import (
    "log"
    "strconv"
    "strings"
)

// parseWeight extracts the leading numeric portion of a weight string
// like "1.5kg" or "400g " and returns it as a float. Unparsable or
// empty strings contribute 0 to the shipment weight; the silent zero
// is the documented catalog behavior, so only log it.
func parseWeight(s string) float64 {
    s = strings.TrimSpace(s)
    if s == "" {
        return 0
    }

    end := 0
    for end < len(s) {
        c := s[end]
        if (c < '0' || c > '9') && c != '.' {
            break
        }
        end++
    }

    if end == 0 {
        log.Printf("cart: unparsable weight %q, treating as 0", s)
        return 0
    }

    w, err := strconv.ParseFloat(s[:end], 64)
    if err != nil {
        log.Printf("cart: unparsable weight %q, treating as 0", s)
        return 0
    }
    return w
}
