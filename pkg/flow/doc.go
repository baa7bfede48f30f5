// Package flow implements the onboarding controllers: PageFlow, the paged
// first-launch tour, and FeatureSheet, the single-screen "What's New" sheet.
//
// Controllers are not safe for concurrent use. They are meant to be driven
// from a single UI event loop, one user action at a time.
package flow
