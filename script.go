package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

// The script runs as a bookmarklet on the meet page. Indentation is stripped
// and lines are joined, so every statement ends with ';' or a brace.
const bootstrapScript = `
javascript:(async function(room, host, meet) {
    if (typeof room !== 'string' || room.length === 0) {
        return alert('invalid room name');
    }
    if (location.origin !== meet) {
        return alert('script must be run on ' + meet);
    }
    const go = (code) => location.href = meet + '/' + code + location.search;
    let resp = await fetch(host + '/' + encodeURIComponent(room) + '/code');
    if (resp.ok) {
        return go(await resp.text());
    }
    if (resp.status !== 404) {
        return alert('error ' + resp.status + ': ' + (resp.statusText || 'unknown'));
    }
    const createMeetingButton = document.querySelector('li[aria-label="Create a meeting for later"]')
                             ?? document.querySelector('li.VfPpkd-rymPhb-ibnC6b');
    createMeetingButton.click();
    let meetingCode;
    for (let i = 0; i < 20; i++) {
        await new Promise((resolve) => setTimeout(resolve, 100));
        const meetingCodeBox = document.querySelector('div.Hayy8b');
        if (meetingCodeBox !== null) {
            meetingCode = /[a-z]{3}-[a-z]{4}-[a-z]{3}/.exec(meetingCodeBox.textContent)[0];
            break;
        }
    }
    if (meetingCode === undefined) {
        return alert('could not find meeting code in page');
    }
    resp = await fetch(host + '/' + encodeURIComponent(room) + '/code/' + meetingCode, { method: 'POST' });
    if (!resp.ok) {
        return alert('error ' + resp.status + ': ' + (resp.statusText || 'unknown'));
    }
    return go(await resp.text());
})(%s, %s, %s)
`

var compactScript = strings.NewReplacer("  ", "", "\n", "").Replace(bootstrapScript)

func jsString(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

// BootstrapScript renders the bookmarklet for room, calling back to host.
func BootstrapScript(room string, host string, meetURL string) string {
	return fmt.Sprintf(compactScript, jsString(room), jsString("https://"+host), jsString(strings.TrimSuffix(meetURL, "/")))
}
