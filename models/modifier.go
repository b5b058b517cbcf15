package models

import (
	"strings"
	"sync"
)

// Modifier osu! 게임 모드를 나타냅니다 (약어로 직렬화)
type Modifier string

const (
	ModifierNoMod      Modifier = "NM"
	ModifierHidden     Modifier = "HD"
	ModifierHardRock   Modifier = "HR"
	ModifierDoubleTime Modifier = "DT"
	ModifierEasy       Modifier = "EZ"
	ModifierHalfTime   Modifier = "HT"
	ModifierFreeMod    Modifier = "FM"
	ModifierTieBreaker Modifier = "TB"
)

// ModifierInfo 특정 모드에 대한 모든 정보를 포함합니다
type ModifierInfo struct {
	Acronym   Modifier // 모드 약어 (예: "HR", "DT")
	Name      string   // 표시 이름 (예: "Hard Rock")
	Bits      int      // osu! API 비트마스크 값
	ColorCode int      // Discord embed 색상 코드
	Numeric   bool     // 닫힌 형식 난이도 변환 규칙 보유 여부
}

// ModifierManager 모든 모드 관련 기능을 관리합니다
type ModifierManager struct {
	modifiers map[Modifier]*ModifierInfo
}

var (
	globalModifierManager *ModifierManager
	modifierOnce          sync.Once
)

// GetModifierManager 전역 ModifierManager 인스턴스를 반환합니다 (싱글톤)
func GetModifierManager() *ModifierManager {
	modifierOnce.Do(func() {
		globalModifierManager = &ModifierManager{
			modifiers: make(map[Modifier]*ModifierInfo),
		}
		globalModifierManager.initializeModifiers()
	})
	return globalModifierManager
}

// initializeModifiers 모드 정보를 초기화합니다
func (mm *ModifierManager) initializeModifiers() {
	// 비트 값은 osu! API의 고정 인코딩을 따름 (EZ=2, HD=8, HR=16, DT=64, HT=256)
	mm.modifiers[ModifierNoMod] = &ModifierInfo{ModifierNoMod, "No Mod", 0, 0x4A90D9, true}
	mm.modifiers[ModifierHidden] = &ModifierInfo{ModifierHidden, "Hidden", 8, 0xF4C430, false}
	mm.modifiers[ModifierHardRock] = &ModifierInfo{ModifierHardRock, "Hard Rock", 16, 0xDA4453, true}
	mm.modifiers[ModifierDoubleTime] = &ModifierInfo{ModifierDoubleTime, "Double Time", 64, 0x8E44AD, true}
	mm.modifiers[ModifierEasy] = &ModifierInfo{ModifierEasy, "Easy", 2, 0x2ECC71, true}
	mm.modifiers[ModifierHalfTime] = &ModifierInfo{ModifierHalfTime, "Half Time", 256, 0x95A5A6, true}
	mm.modifiers[ModifierFreeMod] = &ModifierInfo{ModifierFreeMod, "Free Mod", 0, 0xE67E22, false}
	mm.modifiers[ModifierTieBreaker] = &ModifierInfo{ModifierTieBreaker, "Tie Breaker", 0, 0x34495E, false}
}

// GetModifierInfo 모드의 완전한 정보를 반환합니다
func (mm *ModifierManager) GetModifierInfo(modifier Modifier) (*ModifierInfo, bool) {
	info, exists := mm.modifiers[modifier]
	return info, exists
}

// GetBits 모드의 osu! API 비트마스크 값을 반환합니다
func (mm *ModifierManager) GetBits(modifier Modifier) int {
	if info, exists := mm.modifiers[modifier]; exists {
		return info.Bits
	}
	return 0
}

// GetName 모드의 표시 이름을 반환합니다
func (mm *ModifierManager) GetName(modifier Modifier) string {
	if info, exists := mm.modifiers[modifier]; exists {
		return info.Name
	}
	return "Unknown"
}

// GetColor 모드의 Discord embed 색상을 반환합니다
func (mm *ModifierManager) GetColor(modifier Modifier) int {
	if info, exists := mm.modifiers[modifier]; exists {
		return info.ColorCode
	}
	return 0x36393F
}

// IsNumeric 닫힌 형식 난이도 변환 규칙을 가진 모드인지 확인합니다
func (mm *ModifierManager) IsNumeric(modifier Modifier) bool {
	if info, exists := mm.modifiers[modifier]; exists {
		return info.Numeric
	}
	return false
}

// ParseModifier 약어 문자열을 Modifier로 변환합니다
func (mm *ModifierManager) ParseModifier(raw string) (Modifier, bool) {
	modifier := Modifier(strings.ToUpper(strings.TrimSpace(raw)))
	if _, exists := mm.modifiers[modifier]; exists {
		return modifier, true
	}
	return "", false
}
