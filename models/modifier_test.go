package models

import (
	"testing"
)

func TestModifierManager_GetModifierInfo(t *testing.T) {
	mm := GetModifierManager()

	tests := []struct {
		modifier     Modifier
		expectedName string
		expectedBits int
		numeric      bool
	}{
		{ModifierNoMod, "No Mod", 0, true},
		{ModifierHidden, "Hidden", 8, false},
		{ModifierHardRock, "Hard Rock", 16, true},
		{ModifierDoubleTime, "Double Time", 64, true},
		{ModifierEasy, "Easy", 2, true},
		{ModifierHalfTime, "Half Time", 256, true},
		{ModifierFreeMod, "Free Mod", 0, false},
		{ModifierTieBreaker, "Tie Breaker", 0, false},
	}

	for _, test := range tests {
		t.Run(test.expectedName, func(t *testing.T) {
			info, exists := mm.GetModifierInfo(test.modifier)
			if !exists {
				t.Fatalf("Expected modifier %s to exist", test.modifier)
			}
			if info.Name != test.expectedName {
				t.Errorf("Expected name '%s' for %s, got '%s'", test.expectedName, test.modifier, info.Name)
			}
			if info.Bits != test.expectedBits {
				t.Errorf("Expected bits %d for %s, got %d", test.expectedBits, test.modifier, info.Bits)
			}
			if info.Numeric != test.numeric {
				t.Errorf("Expected numeric=%v for %s, got %v", test.numeric, test.modifier, info.Numeric)
			}
		})
	}
}

func TestModifierManager_GetBits(t *testing.T) {
	mm := GetModifierManager()

	tests := []struct {
		modifier Modifier
		expected int
	}{
		{ModifierNoMod, 0},
		{ModifierEasy, 2},
		{ModifierHidden, 8},
		{ModifierHardRock, 16},
		{ModifierDoubleTime, 64},
		{ModifierHalfTime, 256},
		{Modifier("XX"), 0}, // Unknown modifier should return 0
	}

	for _, test := range tests {
		result := mm.GetBits(test.modifier)
		if result != test.expected {
			t.Errorf("Expected bits %d for %s, got %d", test.expected, test.modifier, result)
		}
	}
}

func TestModifierManager_IsNumeric(t *testing.T) {
	mm := GetModifierManager()

	numericModifiers := []Modifier{ModifierNoMod, ModifierHardRock, ModifierDoubleTime, ModifierEasy, ModifierHalfTime}
	for _, modifier := range numericModifiers {
		if !mm.IsNumeric(modifier) {
			t.Errorf("Expected %s to be numeric", modifier)
		}
	}

	nonNumericModifiers := []Modifier{ModifierHidden, ModifierFreeMod, ModifierTieBreaker, Modifier("XX")}
	for _, modifier := range nonNumericModifiers {
		if mm.IsNumeric(modifier) {
			t.Errorf("Expected %s to not be numeric", modifier)
		}
	}
}

func TestModifierManager_ParseModifier(t *testing.T) {
	mm := GetModifierManager()

	tests := []struct {
		raw      string
		expected Modifier
		ok       bool
	}{
		{"HR", ModifierHardRock, true},
		{"hr", ModifierHardRock, true},
		{" dt ", ModifierDoubleTime, true},
		{"NM", ModifierNoMod, true},
		{"tb", ModifierTieBreaker, true},
		{"XYZ", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		result, ok := mm.ParseModifier(test.raw)
		if ok != test.ok {
			t.Errorf("ParseModifier(%q) ok = %v, expected %v", test.raw, ok, test.ok)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseModifier(%q) = %s, expected %s", test.raw, result, test.expected)
		}
	}
}

func TestModifierManager_GetName(t *testing.T) {
	mm := GetModifierManager()

	if name := mm.GetName(ModifierDoubleTime); name != "Double Time" {
		t.Errorf("Expected 'Double Time', got '%s'", name)
	}

	if name := mm.GetName(Modifier("XX")); name != "Unknown" {
		t.Errorf("Expected 'Unknown' for unknown modifier, got '%s'", name)
	}
}

func TestModifierManager_Singleton(t *testing.T) {
	// 두 개의 인스턴스가 같은 객체인지 확인
	mm1 := GetModifierManager()
	mm2 := GetModifierManager()

	if mm1 != mm2 {
		t.Error("ModifierManager should be a singleton")
	}

	// 같은 데이터를 반환하는지 확인
	bits1 := mm1.GetBits(ModifierHardRock)
	bits2 := mm2.GetBits(ModifierHardRock)
	if bits1 != bits2 {
		t.Errorf("Both instances should return same bits, got %d and %d", bits1, bits2)
	}
}
