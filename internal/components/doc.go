// Package components implements the property search and administration
// components: a configuration gate, a reference data loader and the
// search/save orchestration, all talking to the backend through a
// RemoteDataService and reporting to the user through a Notifier.
package components
