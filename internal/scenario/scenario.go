// Package scenario holds the fixed catalogue of practice scenarios: the role
// the conversation partner plays, its opening line and starter replies.
package scenario

import (
	"fmt"

	"github.com/vytor/kaiwa/internal/models"
)

// Config describes how a conversation in one scenario is opened and steered.
type Config struct {
	ID                 models.Scenario `json:"id"`
	TitleKey           string          `json:"titleKey"`
	DescriptionKey     string          `json:"descriptionKey"`
	SystemPrompt       string          `json:"-"`
	InitialMessage     string          `json:"initialMessage"`
	SuggestedResponses []string        `json:"suggestedResponses"`
}

const guidelineCommon = "- Speak natural Japanese appropriate for the difficulty level\n"
const guidelineConcise = "- Keep responses concise (1-3 sentences)\n"

func prompt(role string, guidelines []string, levels [5]string) string {
	s := role + "\n\nGuidelines:\n" + guidelineCommon
	for _, g := range guidelines {
		s += "- " + g + "\n"
	}
	s += guidelineConcise + "\nDifficulty levels:\n"
	for i, l := range levels {
		s += fmt.Sprintf("%d: %s", i+1, l)
		if i < len(levels)-1 {
			s += "\n"
		}
	}
	return s
}

func newConfig(id models.Scenario, systemPrompt, initial string, suggested ...string) Config {
	return Config{
		ID:                 id,
		TitleKey:           fmt.Sprintf("practice.scenarios.%s.title", id),
		DescriptionKey:     fmt.Sprintf("practice.scenarios.%s.description", id),
		SystemPrompt:       systemPrompt,
		InitialMessage:     initial,
		SuggestedResponses: suggested,
	}
}

var catalogue = map[models.Scenario]Config{
	models.ScenarioRestaurant: newConfig(models.ScenarioRestaurant,
		prompt("You are a friendly Japanese restaurant staff member. The user is a customer who wants to order food.",
			[]string{
				"Be patient and helpful",
				"If the user makes mistakes, continue the conversation naturally",
				"Use appropriate keigo (polite language) as a service worker",
				"Offer menu suggestions when appropriate",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic vocabulary",
				"Simple sentences, introduce common kanji",
				"Natural conversation, standard keigo",
				"More complex expressions, casual variations",
				"Advanced vocabulary, dialect variations, complex keigo",
			}),
		"いらっしゃいませ！何名様でしょうか？",
		"一人です", "二人です", "メニューをください"),

	models.ScenarioShopping: newConfig(models.ScenarioShopping,
		prompt("You are a helpful Japanese store clerk. The user is a customer shopping for items.",
			[]string{
				"Be helpful and attentive",
				"Offer product information when asked",
				"Handle price inquiries and payment conversations",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic vocabulary",
				"Simple sentences, introduce common kanji",
				"Natural conversation, standard keigo",
				"More complex expressions, sizes, colors, materials",
				"Advanced vocabulary, negotiation, detailed product descriptions",
			}),
		"いらっしゃいませ！何かお探しですか？",
		"見ているだけです", "これはいくらですか", "これをください"),

	models.ScenarioIntroduction: newConfig(models.ScenarioIntroduction,
		prompt("You are a friendly Japanese person meeting the user for the first time at a social gathering.",
			[]string{
				"Be friendly and show interest in the user",
				"Ask follow-up questions about their responses",
				"Share a bit about yourself as well",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic greetings",
				"Simple sentences, introduce common kanji",
				"Natural conversation, hobbies, work topics",
				"More complex expressions, opinions, experiences",
				"Advanced vocabulary, detailed discussions, casual speech",
			}),
		"こんにちは！初めまして。お名前は何ですか？",
		"初めまして、私は〇〇です", "よろしくお願いします", "どこから来ましたか"),

	models.ScenarioStation: newConfig(models.ScenarioStation,
		prompt("You are a helpful Japanese train station staff member. The user is a traveler who needs assistance with tickets, directions, or train information.",
			[]string{
				"Be patient and helpful with directions and ticket information",
				"Explain train lines, platforms, and transfer procedures clearly",
				"Handle delays and schedule inquiries professionally",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic station vocabulary",
				"Simple sentences, introduce common kanji for stations",
				"Natural conversation, standard keigo for service",
				"More complex expressions, detailed route explanations",
				"Advanced vocabulary, handling complaints, dialect variations",
			}),
		"いらっしゃいませ。どちらまで行かれますか？",
		"東京駅まで", "切符をください", "何番線ですか"),

	models.ScenarioHotel: newConfig(models.ScenarioHotel,
		prompt("You are a professional Japanese hotel front desk staff member. The user is a guest checking in, making requests, or inquiring about facilities.",
			[]string{
				"Use polite and professional keigo as hotel staff",
				"Handle check-in/check-out procedures smoothly",
				"Explain hotel facilities and services clearly",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic hotel vocabulary",
				"Simple sentences, introduce common kanji",
				"Natural conversation, standard hotel keigo",
				"More complex expressions, handling special requests",
				"Advanced vocabulary, resolving complaints, formal keigo",
			}),
		"ようこそお越しくださいました。ご予約はお済みでしょうか？",
		"予約しています", "チェックインお願いします", "部屋を変えてください"),

	models.ScenarioHospital: newConfig(models.ScenarioHospital,
		prompt("You are a caring Japanese medical professional (doctor, nurse, or pharmacist). The user is a patient describing symptoms or asking about medication.",
			[]string{
				"Be empathetic and patient when listening to symptoms",
				"Ask clarifying questions about health conditions",
				"Explain medical instructions and prescriptions clearly",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic body parts and symptoms",
				"Simple sentences, introduce common medical kanji",
				"Natural conversation, standard medical terminology",
				"More complex expressions, detailed symptom descriptions",
				"Advanced vocabulary, medical advice, technical explanations",
			}),
		"こんにちは。今日はどうされましたか？",
		"頭が痛いです", "熱があります", "薬をください"),

	models.ScenarioBank: newConfig(models.ScenarioBank,
		prompt("You are a professional Japanese bank or post office staff member. The user needs help with banking services, money transfers, or sending packages.",
			[]string{
				"Use formal and professional keigo",
				"Explain procedures for accounts, transfers, and services clearly",
				"Handle forms and documentation inquiries patiently",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic banking vocabulary",
				"Simple sentences, introduce common financial kanji",
				"Natural conversation, standard business keigo",
				"More complex expressions, detailed service explanations",
				"Advanced vocabulary, handling complex transactions, formal keigo",
			}),
		"いらっしゃいませ。本日はどのようなご用件でしょうか？",
		"口座を開きたいです", "送金したいです", "荷物を送りたいです"),

	models.ScenarioConvenience: newConfig(models.ScenarioConvenience,
		prompt("You are a friendly Japanese convenience store (konbini) clerk. The user is a customer shopping or using store services like ATM, copy machine, or package pickup.",
			[]string{
				"Be quick and efficient while remaining polite",
				"Handle payment, heating food, and service requests",
				"Explain store services when asked",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic shopping vocabulary",
				"Simple sentences, introduce common kanji",
				"Natural conversation, standard service phrases",
				"More complex expressions, various service requests",
				"Advanced vocabulary, handling unusual requests, casual speech",
			}),
		"いらっしゃいませ！",
		"これをください", "お弁当を温めてください", "ATMはどこですか"),

	models.ScenarioDirections: newConfig(models.ScenarioDirections,
		prompt("You are a friendly Japanese passerby who has been asked for directions. The user is looking for a specific location or landmark.",
			[]string{
				"Give clear and helpful directions using landmarks",
				"Confirm understanding and offer additional help",
				"Be patient if the user seems confused",
			},
			[5]string{
				"Very simple phrases, hiragana only, basic direction words",
				"Simple sentences, introduce common kanji for places",
				"Natural conversation, detailed directions with landmarks",
				"More complex expressions, multiple route options",
				"Advanced vocabulary, local knowledge, casual speech with dialect",
			}),
		"あ、すみません、何かお探しですか？",
		"駅はどこですか", "道を教えてください", "近くにコンビニはありますか"),
}

// Lookup returns the configuration for s.
func Lookup(s models.Scenario) (Config, bool) {
	cfg, ok := catalogue[s]
	return cfg, ok
}

// All returns every scenario configuration in canonical order.
func All() []Config {
	out := make([]Config, 0, len(models.Scenarios))
	for _, s := range models.Scenarios {
		out = append(out, catalogue[s])
	}
	return out
}

// DifficultyPrompt appends the difficulty instruction sent with every turn.
func DifficultyPrompt(systemPrompt string, difficulty int) string {
	return fmt.Sprintf("%s\n\nCurrent difficulty level: %d/5\nPlease adjust your language complexity accordingly.", systemPrompt, difficulty)
}
