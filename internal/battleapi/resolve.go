package battleapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/okonen/lingoclash/internal/game/combat"
	"github.com/okonen/lingoclash/internal/game/speech"
	"github.com/okonen/lingoclash/internal/game/vocab"
)

// resolveRequest is the wire shape of a resolution request. Item fields may
// be inlined, or supplied via item_id and looked up in the catalog. An
// explicit base_value always wins over the catalog's.
type resolveRequest struct {
	TurnType        string   `json:"turn_type"`
	Rating          string   `json:"rating"`
	AccuracyScore   float64  `json:"accuracy_score"`
	ItemID          string   `json:"item_id,omitempty"`
	ComplexityLevel *int     `json:"complexity_level,omitempty"`
	ItemCategory    string   `json:"item_category,omitempty"`
	BaseValue       *float64 `json:"base_value,omitempty"`
	Revealed        bool     `json:"revealed"`
}

type resolveResponse struct {
	FinalMultiplier float64          `json:"final_multiplier"`
	FinalValue      float64          `json:"final_value"`
	BalanceVersion  string           `json:"balance_version"`
	Breakdown       breakdownPayload `json:"breakdown"`
}

type breakdownPayload struct {
	PronunciationBonus  float64 `json:"pronunciation_bonus"`
	ComplexityBonus     float64 `json:"complexity_bonus"`
	ComplexityGated     bool    `json:"complexity_gated"`
	RevealPenalty       float64 `json:"reveal_penalty"`
	PreClampMultiplier  float64 `json:"pre_clamp_multiplier"`
	PostClampMultiplier float64 `json:"post_clamp_multiplier"`
}

func (s *Service) handleResolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rating, err := speech.ParseRating(req.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assessment, err := speech.NewAssessment(rating, req.AccuracyScore)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, category, baseValue, ok := s.itemFields(c, req)
	if !ok {
		return
	}

	var result combat.Result
	switch req.TurnType {
	case "attack":
		result, err = s.resolver.ResolveAttack(combat.AttackInput{
			Assessment: assessment,
			Level:      level,
			BasePower:  baseValue,
			Revealed:   req.Revealed,
		})
	case "defense":
		result, err = s.resolver.ResolveDefense(combat.DefenseInput{
			Assessment:    assessment,
			Level:         level,
			Category:      category,
			IncomingPower: baseValue,
			Revealed:      req.Revealed,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "turn_type must be attack or defense"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resolveResponse{
		FinalMultiplier: result.Multiplier,
		FinalValue:      result.Value,
		BalanceVersion:  s.tables.Current().Version,
		Breakdown: breakdownPayload{
			PronunciationBonus:  result.Breakdown.PronunciationBonus,
			ComplexityBonus:     result.Breakdown.ComplexityBonus,
			ComplexityGated:     result.Breakdown.ComplexityGated,
			RevealPenalty:       result.Breakdown.RevealPenalty,
			PreClampMultiplier:  result.Breakdown.PreClampMultiplier,
			PostClampMultiplier: result.Breakdown.PostClampMultiplier,
		},
	})
}

// itemFields derives the level, category, and base value for the request,
// from the catalog when item_id is given and from inline fields otherwise.
// On failure it writes the error response and returns ok=false.
//
// On defense turns the base value is the opponent's attack power, which the
// defender's own item can never supply; it must arrive inline.
func (s *Service) itemFields(c *gin.Context, req resolveRequest) (vocab.ComplexityLevel, vocab.Category, float64, bool) {
	var (
		level    vocab.ComplexityLevel
		category vocab.Category
		base     float64
		haveBase bool
	)

	if req.ItemID != "" {
		if s.catalog == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "item lookup is not enabled on this server"})
			return 0, 0, 0, false
		}
		item, found := s.catalog.Get(req.ItemID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown item id"})
			return 0, 0, 0, false
		}
		level = item.Level
		category = item.Category
		if req.TurnType == "attack" {
			base = item.BasePower
			haveBase = true
		}
	} else {
		if req.ComplexityLevel == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "complexity_level is required without item_id"})
			return 0, 0, 0, false
		}
		lvl, err := vocab.NewComplexityLevel(*req.ComplexityLevel)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return 0, 0, 0, false
		}
		level = lvl

		// item_category is meaningful on defense turns only; an inlined
		// attack request may omit it.
		if req.TurnType == "defense" {
			cat, err := vocab.ParseCategory(req.ItemCategory)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return 0, 0, 0, false
			}
			category = cat
		}
	}

	if req.BaseValue != nil {
		base = *req.BaseValue
		haveBase = true
	}
	if !haveBase {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base_value is required"})
		return 0, 0, 0, false
	}
	if err := vocab.ValidateBasePower(base); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, 0, false
	}
	return level, category, base, true
}
