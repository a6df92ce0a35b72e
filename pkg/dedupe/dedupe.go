// Package dedupe scans a catalog for tools sharing a normalized name.
//
// Name-based grouping is deliberately a different key from the import
// path's URL dedup: import dedup stops the same link from being re-added,
// while this scanner surfaces same-titled entries whose URLs differ, such
// as whitespace or case variants left behind by manual edits.
//
// Example usage:
//
//	scan := dedupe.Scan(catalog.List())
//	for _, group := range scan.Groups() {
//		fmt.Printf("%q appears %d times\n", group.Name, len(group.Members))
//	}
package dedupe

import (
	"sort"

	"github.com/agentstation/toolmap/pkg/catalogs"
)

// Group is a set of tools sharing a normalized name. Name holds the
// normalized key; Members keep catalog order.
type Group struct {
	Name    string
	Members []catalogs.Tool
}

// Scan groups tools by normalized name and keeps only groups with two or
// more members. The returned result tracks deletions live, so a cleanup
// pass never needs a full re-scan.
func Scan(tools []catalogs.Tool) *Result {
	byName := make(map[string][]catalogs.Tool)
	order := make([]string, 0)
	for _, tool := range tools {
		key := tool.NormalizedName()
		if key == "" {
			continue
		}
		if _, seen := byName[key]; !seen {
			order = append(order, key)
		}
		byName[key] = append(byName[key], tool)
	}

	groups := make(map[string][]catalogs.Tool, len(byName))
	for key, members := range byName {
		if len(members) >= 2 {
			groups[key] = members
		}
	}
	return &Result{groups: groups, order: order}
}

// Result is a live view over the duplicate groups found by a scan.
type Result struct {
	groups map[string][]catalogs.Tool
	order  []string
}

// Len returns the number of duplicate groups remaining.
func (r *Result) Len() int { return len(r.groups) }

// Groups returns the remaining duplicate groups, largest first; groups of
// equal size keep first-seen order.
func (r *Result) Groups() []Group {
	out := make([]Group, 0, len(r.groups))
	for _, key := range r.order {
		members, ok := r.groups[key]
		if !ok {
			continue
		}
		out = append(out, Group{Name: key, Members: members})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Members) > len(out[j].Members)
	})
	return out
}

// Remove drops a deleted tool from its group. When a group falls to a
// single remaining member it stops being a duplicate group and disappears
// from the result. Reports whether the tool was part of any group.
func (r *Result) Remove(id string) bool {
	for key, members := range r.groups {
		for i, member := range members {
			if member.ID != id {
				continue
			}
			members = append(members[:i], members[i+1:]...)
			if len(members) < 2 {
				delete(r.groups, key)
			} else {
				r.groups[key] = members
			}
			return true
		}
	}
	return false
}
