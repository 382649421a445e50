// Package utils holds small numeric and formatting helpers shared across the
// pipeline.
package utils

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"
)

// SumArr sums a slice.
func SumArr(arr []float64) float64 {
	sum := 0.0
	for i := range arr {
		sum = sum + arr[i]
	}
	return sum
}

func round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

// ToFixed rounds num to the given number of decimal places.
func ToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(round(num*output)) / output
}

// CreateKeyValuePairs makes a string interface human readable. Keys are
// emitted in sorted order so log output is stable.
func CreateKeyValuePairs(m map[string]interface{}, ignoreLowerCase bool, oldBytes ...*bytes.Buffer) string {
	var b *bytes.Buffer
	if len(oldBytes) > 0 {
		b = oldBytes[0]
	} else {
		b = new(bytes.Buffer)
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprint(b, "\n{\n")
	for _, key := range keys {
		value := m[key]
		firstLetter := string(key[0])
		upperCaseFirstLetter := strings.ToUpper(firstLetter)
		if !ignoreLowerCase || upperCaseFirstLetter == firstLetter {
			rv := reflect.ValueOf(value)
			if rv.Kind() == reflect.Struct {
				fmt.Fprint(b, " ", key, ": ")
				CreateKeyValuePairs(structs.Map(value), ignoreLowerCase, b)
			} else {
				fmt.Fprint(b, " ", key, ": ", value, ",\n")
			}
		}
	}
	fmt.Fprint(b, "}\n")
	return b.String()
}
