// Package validate holds the field rules shared by every form on the site.
//
// All functions are pure and safe for concurrent use.
package validate
