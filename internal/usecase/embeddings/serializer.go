package embeddings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scoutlane/talent-backend/internal/domain"
)

// BuildProfileText serializes a player into the canonical text the
// embedding model sees. The output is deterministic for a given profile
// and reads as prose rather than field names, so the model captures
// meaning instead of schema. Game-specific attributes are folded in
// generically, in key order.
func BuildProfileText(p *domain.Player) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Player: %s (%s).", p.Name, p.Username))
	if p.Location != nil && *p.Location != "" {
		sb.WriteString(fmt.Sprintf(" Based in %s.", *p.Location))
	}
	if p.ClassYear != nil {
		sb.WriteString(fmt.Sprintf(" Class of %d.", *p.ClassYear))
	}
	if p.GPA != nil {
		sb.WriteString(fmt.Sprintf(" GPA %.2f.", *p.GPA))
	}
	if p.GraduationDate != nil {
		sb.WriteString(fmt.Sprintf(" Graduating %s.", p.GraduationDate.Format("January 2006")))
	}
	if p.IntendedMajor != nil && *p.IntendedMajor != "" {
		sb.WriteString(fmt.Sprintf(" Intends to major in %s.", *p.IntendedMajor))
	}
	if p.School != nil {
		sb.WriteString(fmt.Sprintf(" Attends %s", p.School.Name))
		if p.School.State != nil && *p.School.State != "" {
			sb.WriteString(fmt.Sprintf(" in %s", *p.School.State))
		}
		sb.WriteString(fmt.Sprintf(", a %s.", schoolTypeLabel(p.School.Type)))
	}
	if p.Bio != nil && *p.Bio != "" {
		sb.WriteString(fmt.Sprintf(" Bio: %s", strings.TrimSpace(*p.Bio)))
		if !strings.HasSuffix(sb.String(), ".") {
			sb.WriteString(".")
		}
	}

	for i := range p.GameProfiles {
		gp := &p.GameProfiles[i]
		sb.WriteString("\n")
		sb.WriteString(gameProfileText(gp, p.MainGameID != nil && *p.MainGameID == gp.GameID))
	}

	return sb.String()
}

func gameProfileText(gp *domain.GameProfile, isMain bool) string {
	var sb strings.Builder

	sb.WriteString(gp.GameName)
	if isMain {
		sb.WriteString(" (main game)")
	}
	sb.WriteString(" profile:")

	var parts []string
	if gp.Username != nil && *gp.Username != "" {
		parts = append(parts, fmt.Sprintf("plays as %s", *gp.Username))
	}
	if gp.Rank != nil && *gp.Rank != "" {
		parts = append(parts, fmt.Sprintf("ranked %s", *gp.Rank))
	}
	if gp.Rating != nil {
		parts = append(parts, fmt.Sprintf("rating %.1f", *gp.Rating))
	}
	if gp.Role != nil && *gp.Role != "" {
		parts = append(parts, fmt.Sprintf("role %s", *gp.Role))
	}
	if len(gp.Agents) > 0 {
		parts = append(parts, fmt.Sprintf("plays %s", strings.Join(gp.Agents, ", ")))
	}
	if gp.PlayStyle != nil && *gp.PlayStyle != "" {
		parts = append(parts, fmt.Sprintf("%s play style", *gp.PlayStyle))
	}
	if gp.MechanicsScore != nil {
		parts = append(parts, fmt.Sprintf("mechanics %.0f/100", *gp.MechanicsScore))
	}
	if gp.GameSenseScore != nil {
		parts = append(parts, fmt.Sprintf("game sense %.0f/100", *gp.GameSenseScore))
	}

	// Extensible per-game fields, sorted for determinism.
	keys := make([]string, 0, len(gp.Attributes))
	for k := range gp.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v := gp.Attributes[k]; v != "" {
			parts = append(parts, fmt.Sprintf("%s %s", strings.ReplaceAll(k, "_", " "), v))
		}
	}

	if len(parts) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(parts, ", "))
	}
	sb.WriteString(".")
	return sb.String()
}

func schoolTypeLabel(t string) string {
	switch t {
	case domain.SchoolTypeHighSchool:
		return "high school"
	case domain.SchoolTypeCollege:
		return "college"
	case domain.SchoolTypeUniversity:
		return "university"
	default:
		return t
	}
}
