package speechrecognition

import "testing"

func TestErrorCodeClassification(t *testing.T) {
	testCases := []struct {
		code        ErrorCode
		recoverable bool
		permission  bool
	}{
		{code: ErrAudio, recoverable: false, permission: false},
		{code: ErrClient, recoverable: false, permission: false},
		{code: ErrPermission, recoverable: false, permission: true},
		{code: ErrNetwork, recoverable: false, permission: false},
		{code: ErrNoMatch, recoverable: true, permission: false},
		{code: ErrSpeechTimeout, recoverable: true, permission: false},
		{code: ErrNetworkTimeout, recoverable: false, permission: false},
		{code: ErrBusy, recoverable: false, permission: false},
		{code: ErrOther, recoverable: false, permission: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.code.String(), func(t *testing.T) {
			if got := testCase.code.Recoverable(); got != testCase.recoverable {
				t.Fatalf("expected recoverable=%t for %s, got %t", testCase.recoverable, testCase.code, got)
			}
			if got := testCase.code.Permission(); got != testCase.permission {
				t.Fatalf("expected permission=%t for %s, got %t", testCase.permission, testCase.code, got)
			}
			if testCase.code.Message() == "" {
				t.Fatalf("expected a non-empty message for %s", testCase.code)
			}
		})
	}
}
