// Copyright 2026 Lumisearch
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package meili

import (
	"context"
	"net/http"
)

// Settings routes of an index. Every mutation is asynchronous and
// returns a TaskInfo; read routes return the current value directly.
// https://docs.meilisearch.com/reference/api/settings.html

func (i *Index) settingsPath(subroute string) string {
	path := i.path() + "/settings"
	if subroute != "" {
		path += "/" + subroute
	}
	return path
}

// settingsGet fetches a settings subroute into out.
func (i *Index) settingsGet(ctx context.Context, subroute string, out any) error {
	return i.client.send(ctx, http.MethodGet, i.settingsPath(subroute), nil, out)
}

// settingsWrite sends a settings mutation and returns the enqueued task.
func (i *Index) settingsWrite(ctx context.Context, method, subroute string, body any) (*TaskInfo, error) {
	var info TaskInfo
	if err := i.client.send(ctx, method, i.settingsPath(subroute), body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetSettings returns the full settings of the index.
func (i *Index) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := i.settingsGet(ctx, "", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings partially updates the settings of the index. Nil fields
// are left untouched.
func (i *Index) UpdateSettings(ctx context.Context, settings *Settings) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPatch, "", settings)
}

// ResetSettings resets the settings of the index to their defaults.
func (i *Index) ResetSettings(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "", nil)
}

// GetRankingRules returns the ranking rules of the index.
func (i *Index) GetRankingRules(ctx context.Context) ([]string, error) {
	var rules []string
	if err := i.settingsGet(ctx, "ranking-rules", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// UpdateRankingRules replaces the ranking rules of the index.
func (i *Index) UpdateRankingRules(ctx context.Context, rules []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "ranking-rules", rules)
}

// ResetRankingRules resets the ranking rules to their defaults.
func (i *Index) ResetRankingRules(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "ranking-rules", nil)
}

// GetDistinctAttribute returns the distinct attribute of the index, or
// an empty string when none is set.
func (i *Index) GetDistinctAttribute(ctx context.Context) (string, error) {
	var attribute *string
	if err := i.settingsGet(ctx, "distinct-attribute", &attribute); err != nil {
		return "", err
	}
	if attribute == nil {
		return "", nil
	}
	return *attribute, nil
}

// UpdateDistinctAttribute sets the distinct attribute of the index.
func (i *Index) UpdateDistinctAttribute(ctx context.Context, attribute string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "distinct-attribute", attribute)
}

// ResetDistinctAttribute removes the distinct attribute of the index.
func (i *Index) ResetDistinctAttribute(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "distinct-attribute", nil)
}

// GetSearchableAttributes returns the searchable attributes of the index.
func (i *Index) GetSearchableAttributes(ctx context.Context) ([]string, error) {
	var attributes []string
	if err := i.settingsGet(ctx, "searchable-attributes", &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// UpdateSearchableAttributes replaces the searchable attributes.
func (i *Index) UpdateSearchableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "searchable-attributes", attributes)
}

// ResetSearchableAttributes resets the searchable attributes.
func (i *Index) ResetSearchableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "searchable-attributes", nil)
}

// GetDisplayedAttributes returns the displayed attributes of the index.
func (i *Index) GetDisplayedAttributes(ctx context.Context) ([]string, error) {
	var attributes []string
	if err := i.settingsGet(ctx, "displayed-attributes", &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// UpdateDisplayedAttributes replaces the displayed attributes.
func (i *Index) UpdateDisplayedAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "displayed-attributes", attributes)
}

// ResetDisplayedAttributes resets the displayed attributes.
func (i *Index) ResetDisplayedAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "displayed-attributes", nil)
}

// GetStopWords returns the stop words of the index.
func (i *Index) GetStopWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := i.settingsGet(ctx, "stop-words", &words); err != nil {
		return nil, err
	}
	return words, nil
}

// UpdateStopWords replaces the stop words of the index.
func (i *Index) UpdateStopWords(ctx context.Context, words []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "stop-words", words)
}

// ResetStopWords resets the stop words of the index.
func (i *Index) ResetStopWords(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "stop-words", nil)
}

// GetSynonyms returns the synonyms of the index.
func (i *Index) GetSynonyms(ctx context.Context) (map[string][]string, error) {
	var synonyms map[string][]string
	if err := i.settingsGet(ctx, "synonyms", &synonyms); err != nil {
		return nil, err
	}
	return synonyms, nil
}

// UpdateSynonyms replaces the synonyms of the index.
func (i *Index) UpdateSynonyms(ctx context.Context, synonyms map[string][]string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "synonyms", synonyms)
}

// ResetSynonyms resets the synonyms of the index.
func (i *Index) ResetSynonyms(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "synonyms", nil)
}

// GetFilterableAttributes returns the filterable attributes of the index.
func (i *Index) GetFilterableAttributes(ctx context.Context) ([]string, error) {
	var attributes []string
	if err := i.settingsGet(ctx, "filterable-attributes", &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// UpdateFilterableAttributes replaces the filterable attributes.
func (i *Index) UpdateFilterableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "filterable-attributes", attributes)
}

// ResetFilterableAttributes resets the filterable attributes.
func (i *Index) ResetFilterableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "filterable-attributes", nil)
}

// GetSortableAttributes returns the sortable attributes of the index.
func (i *Index) GetSortableAttributes(ctx context.Context) ([]string, error) {
	var attributes []string
	if err := i.settingsGet(ctx, "sortable-attributes", &attributes); err != nil {
		return nil, err
	}
	return attributes, nil
}

// UpdateSortableAttributes replaces the sortable attributes.
func (i *Index) UpdateSortableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPut, "sortable-attributes", attributes)
}

// ResetSortableAttributes resets the sortable attributes.
func (i *Index) ResetSortableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "sortable-attributes", nil)
}

// GetTypoTolerance returns the typo tolerance settings of the index.
func (i *Index) GetTypoTolerance(ctx context.Context) (*TypoTolerance, error) {
	var tolerance TypoTolerance
	if err := i.settingsGet(ctx, "typo-tolerance", &tolerance); err != nil {
		return nil, err
	}
	return &tolerance, nil
}

// UpdateTypoTolerance partially updates the typo tolerance settings.
func (i *Index) UpdateTypoTolerance(ctx context.Context, tolerance *TypoTolerance) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPatch, "typo-tolerance", tolerance)
}

// ResetTypoTolerance resets the typo tolerance settings.
func (i *Index) ResetTypoTolerance(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "typo-tolerance", nil)
}

// GetFaceting returns the faceting settings of the index.
func (i *Index) GetFaceting(ctx context.Context) (*Faceting, error) {
	var faceting Faceting
	if err := i.settingsGet(ctx, "faceting", &faceting); err != nil {
		return nil, err
	}
	return &faceting, nil
}

// UpdateFaceting partially updates the faceting settings.
func (i *Index) UpdateFaceting(ctx context.Context, faceting *Faceting) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodPatch, "faceting", faceting)
}

// ResetFaceting resets the faceting settings to their defaults.
func (i *Index) ResetFaceting(ctx context.Context) (*TaskInfo, error) {
	return i.settingsWrite(ctx, http.MethodDelete, "faceting", nil)
}
