// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

// FaqItem is one entry of the ordered FAQ list.
type FaqItem struct {
	ID       string `gorm:"column:id;primaryKey;type:varchar(26)" json:"id"`
	Question string `gorm:"column:question;type:text;not null" json:"question"`
	Answer   string `gorm:"column:answer;type:text;not null" json:"answer"`
	Order    int    `gorm:"column:sort_order;not null;index" json:"order"`
	Timestamps
}

func (FaqItem) TableName() string {
	return "t_seo_faq_item"
}

func (f *FaqItem) GetID() string { return f.ID }
func (f *FaqItem) SetID(id string) { f.ID = id }
func (f *FaqItem) SetOrder(i int) { f.Order = i }
func (f *FaqItem) GetOrder() int { return f.Order }
func (f *FaqItem) Validate() error { return requireFields("question", f.Question, "answer", f.Answer) }
func (f *FaqItem) SameContent(o *FaqItem) bool {
	return f.Question == o.Question && f.Answer == o.Answer
}

// AnswerBlock is a question with a short and a long answer.
type AnswerBlock struct {
	ID          string `gorm:"column:id;primaryKey;type:varchar(26)" json:"id"`
	Question    string `gorm:"column:question;type:text;not null" json:"question"`
	ShortAnswer string `gorm:"column:short_answer;type:text" json:"shortAnswer"`
	LongAnswer  string `gorm:"column:long_answer;type:text" json:"longAnswer"`
	Order       int    `gorm:"column:sort_order;not null;index" json:"order"`
	Timestamps
}

func (AnswerBlock) TableName() string {
	return "t_seo_answer_block"
}

func (a *AnswerBlock) GetID() string { return a.ID }
func (a *AnswerBlock) SetID(id string) { a.ID = id }
func (a *AnswerBlock) SetOrder(i int) { a.Order = i }
func (a *AnswerBlock) GetOrder() int { return a.Order }
func (a *AnswerBlock) Validate() error {
	return requireFields("question", a.Question, "shortAnswer", a.ShortAnswer)
}
func (a *AnswerBlock) SameContent(o *AnswerBlock) bool {
	return a.Question == o.Question && a.ShortAnswer == o.ShortAnswer && a.LongAnswer == o.LongAnswer
}
