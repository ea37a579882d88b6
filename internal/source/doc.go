// Package source classifies submitted URLs by platform and target granularity.
//
// Classification is purely syntactic: no network access happens here. TikTok
// is the default platform; YouTube is recognised by its watch, shorts and
// short-link forms. Profile-shaped TikTok URLs are accepted and marked so the
// acquisition engine fetches only the most recent item.
package source
