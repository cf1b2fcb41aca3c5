package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	node, err := html.Parse(strings.NewReader(
		"<div><b>Khadgar's</b> <i>Whisker</i></div>",
	))
	require.NoError(t, err)
	require.Equal(t, "Khadgar's Whisker", GetText(node))
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "The Jade Forest", CleanText("  The  Jade   Forest "))
	// zero width spaces and other non-printables are dropped outright
	require.Equal(t, "Un'GoroCrater", CleanText("Un'Goro​Crater"))
}

func TestMetaProperty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<html><head><meta property=\"og:title\" content=\"Peacebloom\"></head></html>",
	))
	require.NoError(t, err)
	require.Equal(t, "Peacebloom", MetaProperty(doc, "og:title"))
	require.Equal(t, "", MetaProperty(doc, "og:image"))
}
