/*
 * Copyright (c) 2026, DonorBridge LLC. (https://www.donorbridge.io).
 *
 * DonorBridge LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package scorer

// nicknameGroups lists common given-name equivalence sets. Each name in a
// group is considered a fuzzy match for every other name in the same group.
var nicknameGroups = [][]string{
	{"william", "will", "bill", "billy", "liam"},
	{"robert", "rob", "bob", "bobby"},
	{"richard", "rich", "rick", "ricky", "dick"},
	{"james", "jim", "jimmy", "jamie"},
	{"john", "jack", "johnny", "jon"},
	{"michael", "mike", "mikey"},
	{"christopher", "chris", "kit"},
	{"joseph", "joe", "joey"},
	{"thomas", "tom", "tommy"},
	{"charles", "charlie", "chuck"},
	{"daniel", "dan", "danny"},
	{"matthew", "matt"},
	{"anthony", "tony"},
	{"steven", "stephen", "steve"},
	{"andrew", "andy", "drew"},
	{"edward", "ed", "eddie", "ted", "ned"},
	{"benjamin", "ben", "benny"},
	{"samuel", "sam", "sammy"},
	{"alexander", "alex", "sasha"},
	{"nicholas", "nick", "nic"},
	{"david", "dave", "davey"},
	{"donald", "don", "donny"},
	{"kenneth", "ken", "kenny"},
	{"ronald", "ron", "ronny"},
	{"gerald", "gerry", "jerry"},
	{"lawrence", "larry"},
	{"gregory", "greg"},
	{"timothy", "tim", "timmy"},
	{"jeffrey", "jeff"},
	{"elizabeth", "liz", "lizzie", "beth", "betsy", "betty", "eliza"},
	{"margaret", "meg", "maggie", "peggy", "marge"},
	{"katherine", "catherine", "kate", "katie", "kathy", "cathy", "kat"},
	{"jennifer", "jen", "jenny"},
	{"jessica", "jess", "jessie"},
	{"patricia", "pat", "patty", "tricia", "trish"},
	{"susan", "sue", "susie", "suzanne"},
	{"deborah", "deb", "debbie"},
	{"rebecca", "becky", "becca"},
	{"kimberly", "kim"},
	{"victoria", "vicky", "tori"},
	{"abigail", "abby", "gail"},
	{"barbara", "barb", "babs"},
	{"christina", "christine", "chris", "tina"},
	{"dorothy", "dot", "dottie"},
	{"florence", "flo"},
	{"frances", "fran", "frannie"},
	{"sandra", "sandy"},
	{"pamela", "pam"},
	{"cynthia", "cindy"},
	{"nancy", "nan"},
}

var nicknameIndex = buildNicknameIndex()

func buildNicknameIndex() map[string][]int {

	index := make(map[string][]int)
	for groupID, group := range nicknameGroups {
		for _, name := range group {
			index[name] = append(index[name], groupID)
		}
	}
	return index
}

// nicknameMatch reports whether two already-normalized given names belong to
// the same nickname group.
func nicknameMatch(a, b string) bool {

	for _, groupA := range nicknameIndex[a] {
		for _, groupB := range nicknameIndex[b] {
			if groupA == groupB {
				return true
			}
		}
	}
	return false
}
