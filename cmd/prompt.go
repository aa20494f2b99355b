package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"oxexplorer/internal/types"
)

const firstPriceYear = 1995

// choose returns value when set. Otherwise it offers list() in the picker on a
// terminal, or fails naming flag.
func (a *app) choose(ctx context.Context, value, flag, title string, list func(context.Context) ([]string, error)) (string, error) {
	if value != "" {
		return value, nil
	}
	if !a.interactive() {
		return "", errMissingFlag(flag)
	}
	options, err := list(ctx)
	if err != nil {
		return "", err
	}
	return pickOne(title, options)
}

func (a *app) chooseMany(ctx context.Context, values []string, flag, title string, list func(context.Context) ([]string, error)) ([]string, error) {
	if len(values) > 0 {
		return values, nil
	}
	if !a.interactive() {
		return nil, errMissingFlag(flag)
	}
	options, err := list(ctx)
	if err != nil {
		return nil, err
	}
	return pickMany(title, options)
}

func (a *app) chooseBand(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !a.interactive() {
		return "", errMissingFlag("band")
	}
	return pickOne("Council tax band", types.Bands)
}

func (a *app) chooseQuarter(value string) (types.Quarter, error) {
	if value != "" {
		return types.ParseQuarter(value)
	}
	if !a.interactive() {
		return "", errMissingFlag("quarter")
	}
	options := make([]string, len(types.Quarters))
	for i, q := range types.Quarters {
		options[i] = string(q)
	}
	got, err := pickOne("Quarter", options)
	if err != nil {
		return "", err
	}
	return types.Quarter(got), nil
}

func (a *app) chooseYears(values []int, flag, title string) ([]int, error) {
	if len(values) > 0 {
		return values, nil
	}
	if !a.interactive() {
		return nil, errMissingFlag(flag)
	}
	got, err := pickMany(title, yearOptions(time.Now().Year()))
	if err != nil {
		return nil, err
	}
	return atoiAll(got)
}

func (a *app) chooseYear(value int, flag, title string) (int, error) {
	if value != 0 {
		return value, nil
	}
	if !a.interactive() {
		return 0, errMissingFlag(flag)
	}
	got, err := pickOne(title, yearOptions(time.Now().Year()))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(got)
}

// readLine asks for free text such as a postcode.
func (a *app) readLine(value, flag, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !a.interactive() {
		return "", errMissingFlag(flag)
	}
	fmt.Fprintf(a.out, "%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errPickerCancelled
	}
	return line, nil
}

// yearOptions lists years newest first, back to the start of the price series.
func yearOptions(latest int) []string {
	var out []string
	for y := latest; y >= firstPriceYear; y-- {
		out = append(out, strconv.Itoa(y))
	}
	return out
}

func atoiAll(in []string) ([]int, error) {
	out := make([]int, 0, len(in))
	for _, s := range in {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid year %q", s)
		}
		out = append(out, n)
	}
	return out, nil
}
