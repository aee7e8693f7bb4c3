package pricing

import (
	"fmt"
	"strings"

	"overcooked-ordering/pricing-svc/internal/domain"
)

// AllocateEqualSplit charges everyone ceil(total/n). The charges may overrun
// total by up to n-1 yen; that overrun is kept on purpose for display.
func AllocateEqualSplit(total int64, participantCount int) ([]int64, error) {
	if participantCount <= 0 {
		return nil, fmt.Errorf("%w: equal split needs at least one participant, got %d", ErrValidation, participantCount)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: equal split total cannot be negative, got %d", ErrValidation, total)
	}

	perPerson := ceilDiv(total, int64(participantCount))
	charges := make([]int64, participantCount)
	for i := range charges {
		charges[i] = perPerson
	}
	return charges, nil
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

// AllocateItemSplit charges each participant for the whole lines they own.
// Unowned lines go round-robin from the first participant, and whatever
// remains between total and the line sums lands on the first participant.
// A line claimed by several participants is charged in full to each of them.
func AllocateItemSplit(lines []domain.CartLine, participants []domain.SplitParticipant, total int64) ([]domain.Allocation, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: by-item split needs at least 2 participants, got %d", ErrValidation, len(participants))
	}
	for i, p := range participants {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("%w: participant %d has no name", ErrValidation, i)
		}
	}

	assignments := distributeUnassigned(lines, participants)
	allocations := make([]domain.Allocation, len(participants))
	for i, p := range participants {
		allocations[i] = domain.Allocation{
			Name:    p.Name,
			Amount:  ownedTotal(lines, assignments[i]),
			ItemIDs: assignments[i],
		}
	}

	reconcile(allocations, total)
	return allocations, nil
}

// distributeUnassigned returns each participant's item ids with the unowned
// ones appended in cart order.
func distributeUnassigned(lines []domain.CartLine, participants []domain.SplitParticipant) [][]string {
	owned := make(map[string]bool)
	assignments := make([][]string, len(participants))
	for i, p := range participants {
		seen := make(map[string]bool, len(p.ItemIDs))
		ids := make([]string, 0, len(p.ItemIDs))
		for _, id := range p.ItemIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			owned[id] = true
			ids = append(ids, id)
		}
		assignments[i] = ids
	}

	next := 0
	for _, line := range lines {
		id := line.ItemID()
		if owned[id] {
			continue
		}
		owned[id] = true
		assignments[next] = append(assignments[next], id)
		next = (next + 1) % len(participants)
	}
	return assignments
}

func ownedTotal(lines []domain.CartLine, itemIDs []string) int64 {
	ids := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		ids[id] = true
	}
	var sum int64
	for _, line := range lines {
		if ids[line.ItemID()] {
			sum += LineTotal(line)
		}
	}
	return sum
}

// reconcile makes the allocations sum to total exactly.
func reconcile(allocations []domain.Allocation, total int64) {
	if len(allocations) == 0 {
		return
	}
	var sum int64
	for _, a := range allocations {
		sum += a.Amount
	}
	if diff := total - sum; diff != 0 {
		allocations[0].Amount += diff
	}
}
