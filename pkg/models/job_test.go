package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_UnmarshalLocationShapes(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","location":"Berlin, Germany"}`), &j))
		require.NotNil(t, j.Location)
		assert.Equal(t, "Berlin, Germany", j.Location.Raw)
		assert.Empty(t, j.Location.City)
	})

	t.Run("object form", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","location":{"city":"Austin","country":"US"}}`), &j))
		require.NotNil(t, j.Location)
		assert.Equal(t, "Austin", j.Location.City)
		assert.Equal(t, "US", j.Location.Country)
		assert.Empty(t, j.Location.Raw)
	})

	t.Run("unexpected shape degrades to empty", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","location":42}`), &j))
		require.NotNil(t, j.Location)
		assert.Equal(t, Location{}, *j.Location)
	})
}

func TestJob_UnmarshalSalaryShapes(t *testing.T) {
	t.Run("nested object", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","salary":{"min":90000,"max":120000,"currency":"USD","period":"year"}}`), &j))
		require.NotNil(t, j.Salary)
		assert.True(t, j.Salary.Object())
		require.NotNil(t, j.Salary.Max)
		assert.Equal(t, 120000.0, *j.Salary.Max)
	})

	t.Run("flat fields", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","salary_min":40000,"salary_currency":"EUR"}`), &j))
		assert.False(t, j.Salary.Object())
		require.NotNil(t, j.SalaryMin)
		assert.Equal(t, 40000.0, *j.SalaryMin)
		assert.Equal(t, "EUR", j.SalaryCurrency)
	})

	t.Run("non-object salary degrades", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","salary":"competitive"}`), &j))
		require.NotNil(t, j.Salary)
		assert.False(t, j.Salary.Object())
		assert.Nil(t, j.Salary.Min)
	})
}

func TestJob_UnmarshalApplicationMethodShapes(t *testing.T) {
	t.Run("string form", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","application_method":"Apply on site"}`), &j))
		require.NotNil(t, j.ApplicationMethod)
		assert.False(t, j.ApplicationMethod.Object())
		assert.Equal(t, "Apply on site", j.ApplicationMethod.Raw)
	})

	t.Run("object form", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","application_method":{"type":"easy_apply"}}`), &j))
		require.NotNil(t, j.ApplicationMethod)
		assert.True(t, j.ApplicationMethod.Object())
		assert.Equal(t, "easy_apply", j.ApplicationMethod.Type)
	})

	t.Run("empty object stays an object", func(t *testing.T) {
		var j Job
		require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","application_method":{}}`), &j))
		require.NotNil(t, j.ApplicationMethod)
		assert.True(t, j.ApplicationMethod.Object())
	})
}

func TestJob_UnmarshalPostDate(t *testing.T) {
	var j Job
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","post_date":{"iso_format":"2025-06-15T08:00:00Z"}}`), &j))
	require.NotNil(t, j.PostDate)
	assert.Equal(t, "2025-06-15T08:00:00Z", j.PostDate.ISOFormat)
}

func TestJob_UnmarshalEasyApplyFlag(t *testing.T) {
	var withFlag Job
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u","is_easy_apply":false}`), &withFlag))
	require.NotNil(t, withFlag.IsEasyApply)
	assert.False(t, *withFlag.IsEasyApply)

	var without Job
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","url":"u"}`), &without))
	assert.Nil(t, without.IsEasyApply)
}

func TestLocation_MarshalRoundTrip(t *testing.T) {
	raw := &Location{Raw: "Berlin"}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.Equal(t, `"Berlin"`, string(data))

	structured := &Location{City: "Austin", Country: "US"}
	data, err = json.Marshal(structured)
	require.NoError(t, err)
	assert.JSONEq(t, `{"city":"Austin","country":"US"}`, string(data))
}
