package controllers

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hello-world123pratik/Skillchat/models"
)

func TestNormalizeSkills(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"comma separated", []string{"go, mongodb ,react"}, []string{"go", "mongodb", "react"}},
		{"already split", []string{"go", "react"}, []string{"go", "react"}},
		{"mixed", []string{"go,react", "docker"}, []string{"go", "react", "docker"}},
		{"drops empties", []string{" , go,, "}, []string{"go"}},
		{"empty input", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSkills(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeSkills(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  User.Case@Example.COM "); got != "user.case@example.com" {
		t.Fatalf("NormalizeEmail mismatch: %s", got)
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cr3t-password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "s3cr3t-password" {
		t.Fatal("password stored in plaintext")
	}
	if !VerifyPassword(hash, "s3cr3t-password") {
		t.Fatal("VerifyPassword failed when password should match")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("VerifyPassword succeeded when it should have failed")
	}
}

func TestIsValidConversation(t *testing.T) {
	actor := primitive.NewObjectID()
	other := primitive.NewObjectID()
	ghost := primitive.NewObjectID()

	users := map[primitive.ObjectID]UserSummary{
		actor: {ID: actor, Name: "A"},
		other: {ID: other, Name: "B"},
	}

	conv := func(members ...primitive.ObjectID) models.Conversation {
		return models.Conversation{Members: members}
	}

	if !isValidConversation(conv(actor, other), actor, users) {
		t.Fatal("valid 1:1 conversation rejected")
	}
	if isValidConversation(conv(actor), actor, users) {
		t.Fatal("single-member conversation accepted")
	}
	if isValidConversation(conv(actor, other, ghost), actor, users) {
		t.Fatal("three-member conversation accepted")
	}
	if isValidConversation(conv(actor, ghost), actor, users) {
		t.Fatal("conversation with a deleted member accepted")
	}
	if isValidConversation(conv(actor, actor), actor, users) {
		t.Fatal("conversation with no other member accepted")
	}
}
