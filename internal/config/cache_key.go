package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey holds the token id of a user's current login.
func (r *CacheKeyStruct) UserSessionKey(userID int) string {
	return fmt.Sprintf("session:%d", userID)
}

// StudentResultsKey caches the aggregated results view of a student.
func (r *CacheKeyStruct) StudentResultsKey(studentID int) string {
	return fmt.Sprintf("student:%d:results", studentID)
}

// StudentResultsChannel is the PubSub channel fresh results are published on.
func (r *CacheKeyStruct) StudentResultsChannel(studentID int) string {
	return fmt.Sprintf("student:%d:results:updates", studentID)
}

var CacheKey = NewCacheKeyStruct()
